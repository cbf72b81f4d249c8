package ytdlp

import (
	"context"
	"errors"
	"testing"
	"time"

	ytdlplib "github.com/lrstanley/go-ytdlp"

	"github.com/riyanoob/dlp-gui/internal/download"
	"github.com/riyanoob/dlp-gui/internal/model"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		status   ytdlplib.ProgressStatus
		expected download.ProgressPhase
	}{
		{ytdlplib.ProgressStatusDownloading, download.PhaseDownloading},
		{ytdlplib.ProgressStatusFinished, download.PhaseFinished},
		{ytdlplib.ProgressStatusError, download.PhaseError},
	}

	for _, test := range tests {
		result := mapStatus(test.status)
		if result != test.expected {
			t.Errorf("mapStatus(%v) = %s, expected %s", test.status, result, test.expected)
		}
	}
}

func TestConvertUpdate(t *testing.T) {
	update := ytdlplib.ProgressUpdate{
		Status:          ytdlplib.ProgressStatusDownloading,
		DownloadedBytes: 1 << 20,
		TotalBytes:      4 << 20,
		Filename:        "/downloads/video.mp4",
		Started:         time.Now().Add(-time.Second),
	}

	ev := convertUpdate(update)
	if ev.Phase != download.PhaseDownloading {
		t.Errorf("Expected downloading phase, got %s", ev.Phase)
	}
	if ev.DownloadedBytes != 1<<20 {
		t.Errorf("Expected downloaded bytes %d, got %d", 1<<20, ev.DownloadedBytes)
	}
	if ev.TotalBytes != 4<<20 {
		t.Errorf("Expected total bytes %d, got %d", 4<<20, ev.TotalBytes)
	}
	if ev.Filename != "/downloads/video.mp4" {
		t.Errorf("Expected full output path, got %s", ev.Filename)
	}
	if ev.Speed <= 0 {
		t.Errorf("Expected positive speed, got %f", ev.Speed)
	}
	if ev.Err != "" {
		t.Errorf("Expected no error text, got %s", ev.Err)
	}

	ev = convertUpdate(ytdlplib.ProgressUpdate{Status: ytdlplib.ProgressStatusError})
	if ev.Phase != download.PhaseError || ev.Err == "" {
		t.Errorf("Expected error phase with message, got %+v", ev)
	}
}

func TestComputeSpeed(t *testing.T) {
	if speed := computeSpeed(time.Time{}, 1000); speed != 0 {
		t.Errorf("Expected 0 speed for zero start time, got %f", speed)
	}

	if speed := computeSpeed(time.Now().Add(-time.Second), 0); speed != 0 {
		t.Errorf("Expected 0 speed for no bytes, got %f", speed)
	}

	started := time.Now().Add(-2 * time.Second)
	speed := computeSpeed(started, 2048)
	if speed < 500 || speed > 1500 {
		t.Errorf("Expected ~1024 bytes/sec, got %f", speed)
	}
}

func TestEtaSeconds(t *testing.T) {
	if eta := etaSeconds(0); eta != model.UnknownETA {
		t.Errorf("Expected unknown ETA for zero duration, got %d", eta)
	}
	if eta := etaSeconds(-time.Second); eta != model.UnknownETA {
		t.Errorf("Expected unknown ETA for negative duration, got %d", eta)
	}
	if eta := etaSeconds(90 * time.Second); eta != 90 {
		t.Errorf("Expected ETA 90, got %d", eta)
	}
}

func TestOutputTemplate(t *testing.T) {
	if tmpl := outputTemplate(nil); tmpl != DefaultOutputTemplate {
		t.Errorf("Expected default template, got %s", tmpl)
	}

	opts := map[string]string{OptOutputTemplate: "%(uploader)s - %(title)s.%(ext)s"}
	if tmpl := outputTemplate(opts); tmpl != "%(uploader)s - %(title)s.%(ext)s" {
		t.Errorf("Expected custom template, got %s", tmpl)
	}
}

func TestClassifyRunError(t *testing.T) {
	ctx := context.Background()

	err := classifyRunError(ctx, errors.New("HTTP Error 403: Forbidden"))
	var dlErr *download.Error
	if !errors.As(err, &dlErr) || dlErr.Kind != download.KindNetwork {
		t.Errorf("Expected network kind, got %v", err)
	}
	if dlErr.Message != "HTTP Error 403: Forbidden" {
		t.Errorf("Expected message preserved, got %s", dlErr.Message)
	}

	err = classifyRunError(ctx, errors.New("write /downloads/video.mp4: no space left on device"))
	if !errors.As(err, &dlErr) || dlErr.Kind != download.KindStorage {
		t.Errorf("Expected storage kind, got %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err = classifyRunError(cancelled, errors.New("signal: killed"))
	if !errors.As(err, &dlErr) || dlErr.Kind != download.KindCancelled {
		t.Errorf("Expected cancelled kind, got %v", err)
	}
}
