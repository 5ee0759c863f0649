package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"catalogstats/internal/metrics"
)

// RenderFile renders s into dir/name. The image is written to a temporary
// file in dir first and renamed into place, so readers never see a partial PNG.
func RenderFile(r Renderer, dir, name string, s Series, opts Options) (path string, err error) {
	defer func() { metrics.RecordRender(string(opts.Kind), err) }()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp chart: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := r.Render(tmp, s, opts); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp chart: %w", err)
	}

	path = filepath.Join(dir, name)
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("move chart into place: %w", err)
	}
	return path, nil
}

// RenderBase64 renders s in memory and returns the PNG as standard base64.
func RenderBase64(r Renderer, s Series, opts Options) (encoded string, err error) {
	defer func() { metrics.RecordRender(string(opts.Kind), err) }()

	var buf bytes.Buffer
	if err := r.Render(&buf, s, opts); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
