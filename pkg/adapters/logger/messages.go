package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting postprocessing":                   "後処理を開始します",
		"Processing %d frames with %d workers":      "%d フレームを %d ワーカーで処理中",
		"Processed %d/%d frames":                    "%d/%d フレームを処理しました",
		"Postprocessing completed: %d frames in %s": "後処理が完了しました: %d フレーム, %s",
		"Postprocessing failed: %s":                 "後処理に失敗しました: %s",
		"Failed to save run metadata: %s":           "実行メタデータの保存に失敗しました: %s",
		"Interrupted, shutting down...":             "中断されました。シャットダウン中...",
		"Output saved to %s":                        "出力を %s に保存しました",

		// ffpp filter
		"Postprocess context created: %dx%d %s, mode %s, flags 0x%08x": "後処理コンテキストを作成: %dx%d %s, モード %s, フラグ 0x%08x",
		"Postprocess context released":                                 "後処理コンテキストを解放しました",

		// Postprocess stage
		"Frame %d filtered in %s": "フレーム %d を %s で処理しました",

		// Output stage
		"Failed to save output frame %d: %v": "出力フレーム %d の保存に失敗しました: %v",
		"Failed to save source frame %d: %v": "入力フレーム %d の保存に失敗しました: %v",
		"Failed to save comparison %d: %v":   "比較画像 %d の保存に失敗しました: %v",
	})
}
