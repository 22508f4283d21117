// Package main provides localization for the ffpp CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input and Output": "入出力",
		"Filter":           "フィルタ",
		"Debug":            "デバッグ",
		"Logging":          "ログ",

		// Root command
		"Deblock, dering and deinterlace raw YV12/YUY2 video": "YV12/YUY2 生ビデオのデブロック・デリンギング・インターレース解除",
		"ffpp runs libpostproc-style postprocessing filters over raw video frames. YUY2 input is converted to planar 4:2:2 and back around the filter.": "ffppは生ビデオフレームにlibpostproc互換の後処理フィルタを適用します。YUY2入力はフィルタの前後で planar 4:2:2 との間で変換されます。",

		// Process command
		"Postprocess a raw video file": "生ビデオファイルを後処理",
		"Read raw frames, run the filter chain over each and write raw frames of the same layout.": "生フレームを読み込み、各フレームにフィルタチェーンを適用して同じレイアウトで書き出します。",

		// Input and output flags
		"YAML configuration file":                         "YAML設定ファイル",
		"Raw input file":                                  "入力する生ビデオファイル",
		"Raw output file":                                 "出力する生ビデオファイル",
		"Frame width in pixels":                           "フレームの幅（ピクセル）",
		"Frame height in pixels":                          "フレームの高さ（ピクセル）",
		"Pixel format (yv12, yuy2)":                       "ピクセルフォーマット（yv12, yuy2）",
		"Frames to process, e.g. 0-99,120 (default: all)": "処理するフレーム（例: 0-99,120、デフォルト: 全て）",

		// Filter flags
		"Filter chain, e.g. hb:a,vb:a,dr:a (see 'ffpp filters')":    "フィルタチェーン（例: hb:a,vb:a,dr:a、'ffpp filters' を参照）",
		"Filter preset (default, fast, accurate, deint)":            "フィルタプリセット（default, fast, accurate, deint）",
		"CPU capabilities: auto, none or a list like mmx,isse,sse2": "CPU機能: auto, none または mmx,isse,sse2 のような一覧",
		"Number of parallel filter instances":                       "並列フィルタインスタンス数",
		"YUY2 converter backend (auto, ffmpeg, go)":                 "YUY2変換のバックエンド（auto, ffmpeg, go）",

		// Debug flags
		"Save before/after images for each frame": "各フレームの処理前後の画像を保存",
		"Directory for debug output":              "デバッグ出力のディレクトリ",
		"Enlarge debug images by this factor":     "デバッグ画像の拡大倍率",
		"Write a run summary (.md or .yaml)":      "実行サマリーを出力（.md または .yaml）",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Log format (console, text, json)":     "ログ形式（console, text, json）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Other commands
		"List the available filters and options":                          "利用可能なフィルタとオプションを一覧表示",
		"Show detected CPU capabilities and the filter flags they map to": "検出したCPU機能と対応するフィルタフラグを表示",
		"Show version information":                                        "バージョン情報を表示",
		"Presets:":                                                        "プリセット:",
		"Processor: %s":                                                   "プロセッサ: %s",
		"Capabilities: %s":                                                "機能: %s",
		"Filter flags: 0x%08x":                                            "フィルタフラグ: 0x%08x",
		"ffpp version %s":                                                 "ffpp バージョン %s",

		// Runtime messages
		"Postprocessing %s (%dx%d %s, %d frames) with %q":                        "%s を後処理中 (%dx%d %s, %d フレーム) フィルタ %q",
		"Temporal noise reduction depends on frame order; using a single worker": "時間軸ノイズ低減はフレーム順に依存するため、ワーカー1つで処理します",
		"interrupted": "中断されました",
		"FFmpeg libraries not available, using the Go converter: %s": "FFmpegライブラリが利用できないため、Go実装の変換器を使用します: %s",
		"Summary saved to %s":         "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",

		// Summary content
		"Postprocess Summary": "後処理サマリー",
		"Input":               "入力",
		"Output":              "出力",
		"Timing":              "処理時間",
		"Item":                "項目",
		"Value":               "値",
		"File":                "ファイル",
		"Size":                "サイズ",
		"Format":              "フォーマット",
		"Frame Rate":          "フレームレート",
		"Frames":              "フレーム数",
		"Filter Chain":        "フィルタチェーン",
		"Luma Filters":        "輝度フィルタ",
		"Chroma Filters":      "色差フィルタ",
		"CPU":                 "CPU",
		"Flags":               "フラグ",
		"Workers":             "ワーカー数",
		"Scaler":              "変換器",
		"Frames Written":      "書き込みフレーム数",
		"Bytes Written":       "書き込みバイト数",
		"Wall Time":           "実時間",
		"Filter Time":         "フィルタ時間",
		"Mean per Frame":      "1フレーム平均",
		"Fastest Frame":       "最速フレーム",
		"Slowest Frame":       "最遅フレーム",
		"Throughput":          "スループット",
		"Generated at":        "生成日時",
		"none":                "なし",
	})
}
