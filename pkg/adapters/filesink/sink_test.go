package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/ffpp/pkg/mocks"
	"github.com/user/ffpp/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func pngRenderer() *mocks.Renderer {
	return &mocks.Renderer{}
}

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveRunJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	data := []byte(`{"spec": "de"}`)
	if err := sink.SaveRunJSON(data); err != nil {
		t.Fatalf("SaveRunJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "run.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveFrames(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, pngRenderer())

	img := image.NewGray(image.Rect(0, 0, 16, 8))
	if err := sink.SaveSourceFrame(3, img); err != nil {
		t.Fatalf("SaveSourceFrame failed: %v", err)
	}
	if err := sink.SaveOutputFrame(3, img); err != nil {
		t.Fatalf("SaveOutputFrame failed: %v", err)
	}

	for _, p := range []string{
		filepath.Join(testBaseDir, "frames", "source", "frame-0003.png"),
		filepath.Join(testBaseDir, "frames", "output", "frame-0003.png"),
	} {
		if _, ok := fs.GetFile(p); !ok {
			t.Errorf("expected file to be saved at %s", p)
		}
	}
	if ok, _ := fs.Exists(filepath.Join(testBaseDir, "frames", "source")); !ok {
		t.Error("expected source directory to be created")
	}
}

func TestSink_SaveComparison(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := pngRenderer()
	sink := New(testBaseDir, fs, renderer)

	before := image.NewGray(image.Rect(0, 0, 16, 8))
	after := image.NewGray(image.Rect(0, 0, 16, 8))
	if err := sink.SaveComparison(12, before, after); err != nil {
		t.Fatalf("SaveComparison failed: %v", err)
	}

	if len(renderer.Canvases) != 1 {
		t.Fatalf("expected 1 canvas, got %d", len(renderer.Canvases))
	}
	canvas := renderer.Canvases[0]
	bounds := canvas.ToImage().Bounds()
	if bounds.Dx() != 16+comparisonGap+16 || bounds.Dy() != comparisonLabel+8 {
		t.Errorf("unexpected canvas size %dx%d", bounds.Dx(), bounds.Dy())
	}
	if len(canvas.Images) != 2 || canvas.Images[1] != image.Pt(16+comparisonGap, comparisonLabel) {
		t.Errorf("unexpected image placement %v", canvas.Images)
	}
	if len(canvas.Labels) != 2 || canvas.Labels[0].Text != "before" || canvas.Labels[1].Text != "after" {
		t.Fatalf("unexpected labels %v", canvas.Labels)
	}
	if canvas.Labels[0].At.X != 8 || canvas.Labels[1].At.X != 16+comparisonGap+8 {
		t.Errorf("labels should be centred over their frames, got %v", canvas.Labels)
	}
	if canvas.Labels[0].Align != ports.AlignCenter {
		t.Errorf("expected centred labels")
	}
	if len(canvas.Rects) != 1 || canvas.Rects[0].Min.X < 16 || canvas.Rects[0].Max.X > 16+comparisonGap {
		t.Errorf("expected one divider inside the gap, got %v", canvas.Rects)
	}

	expectedPath := filepath.Join(testBaseDir, "comparisons", "frame-0012.png")
	if _, ok := fs.GetFile(expectedPath); !ok {
		t.Errorf("expected file to be saved at %s", expectedPath)
	}
}

func TestSink_Zoom(t *testing.T) {
	renderer := pngRenderer()
	var resized [][2]int
	renderer.ResizeImageFunc = func(img image.Image, width, height int) image.Image {
		resized = append(resized, [2]int{width, height})
		return image.NewGray(image.Rect(0, 0, width, height))
	}
	sink := New(testBaseDir, mocks.NewFileSystem(), renderer, WithZoom(3))

	img := image.NewGray(image.Rect(0, 0, 10, 4))
	if err := sink.SaveComparison(0, img, img); err != nil {
		t.Fatalf("SaveComparison failed: %v", err)
	}

	if len(resized) != 2 || resized[0] != [2]int{30, 12} {
		t.Errorf("unexpected resizes %v", resized)
	}
	bounds := renderer.Canvases[0].ToImage().Bounds()
	if bounds.Dx() != 60+comparisonGap {
		t.Errorf("expected zoomed canvas width %d, got %d", 60+comparisonGap, bounds.Dx())
	}
}

func TestSink_EncodeError(t *testing.T) {
	renderer := &mocks.Renderer{
		EncodePNGFunc: func(image.Image) ([]byte, error) {
			return nil, errors.New("encoder broken")
		},
	}
	sink := New(testBaseDir, mocks.NewFileSystem(), renderer)

	if err := sink.SaveOutputFrame(1, image.NewGray(image.Rect(0, 0, 2, 2))); err == nil {
		t.Error("expected encode error")
	}
}
