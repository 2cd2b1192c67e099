// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/olegiv/sitedeck/internal/model"
	"github.com/olegiv/sitedeck/internal/storage"
)

// Exporter writes site archives.
type Exporter struct {
	bucket storage.Bucket
	logger *slog.Logger
}

// NewExporter creates a new Exporter reading images from bucket.
func NewExporter(bucket storage.Bucket, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{bucket: bucket, logger: logger}
}

// Export writes the archive of site to w. Only images stored under the
// site folder are included; other URLs stay references in site.json.
// Images that cannot be read are skipped and logged.
func (e *Exporter) Export(ctx context.Context, site *model.Site, w io.Writer) error {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Site:       site,
		Images:     []ExportImage{},
	}

	zw := zip.NewWriter(w)

	seen := map[string]bool{}
	for _, u := range ImageURLs(site) {
		key, ok := e.keyFor(u, site.URL)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true

		if err := ctx.Err(); err != nil {
			_ = zw.Close()
			return err
		}
		img, err := e.addImage(ctx, zw, key)
		if err != nil {
			e.logger.Warn("failed to add image to export", "site", site.URL, "key", key, "error", err)
			continue
		}
		img.URL = u
		data.Images = append(data.Images, img)
	}

	jw, err := zw.Create(SiteFile)
	if err != nil {
		_ = zw.Close()
		return fmt.Errorf("creating %s: %w", SiteFile, err)
	}
	enc := json.NewEncoder(jw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("writing %s: %w", SiteFile, err)
	}
	return zw.Close()
}

// keyFor returns the bucket key of a public URL of this bucket, provided it
// lies in folder.
func (e *Exporter) keyFor(u, folder string) (string, bool) {
	prefix := e.bucket.PublicURL("") // public URL of the bucket root, with trailing slash
	if folder == "" || !strings.HasPrefix(u, prefix) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimPrefix(u, prefix))
	if err != nil || storage.ValidateKey(key) != nil || !strings.HasPrefix(key, folder+"/") {
		return "", false
	}
	return key, true
}

func (e *Exporter) addImage(ctx context.Context, zw *zip.Writer, key string) (ExportImage, error) {
	src, err := e.bucket.Open(ctx, key)
	if err != nil {
		return ExportImage{}, err
	}
	defer func() { _ = src.Close() }()

	entry := path.Join(ImagesDir, key)
	// Images are already compressed.
	dst, err := zw.CreateHeader(&zip.FileHeader{Name: entry, Method: zip.Store, Modified: time.Now().UTC()})
	if err != nil {
		return ExportImage{}, fmt.Errorf("creating zip entry: %w", err)
	}
	n, err := io.Copy(dst, src)
	if err != nil {
		return ExportImage{}, fmt.Errorf("copying image: %w", err)
	}
	return ExportImage{Key: key, Path: entry, Size: n}, nil
}

// ImageURLs lists every non-empty image URL of site in section order.
func ImageURLs(site *model.Site) []string {
	var urls []string
	add := func(u string) {
		if u != "" {
			urls = append(urls, u)
		}
	}
	if site.Hero != nil {
		add(site.Hero.BackgroundImageURL)
	}
	if site.Services != nil {
		for _, i := range site.Services.Items {
			add(i.ImageURL)
		}
	}
	if site.Portfolio != nil {
		for _, i := range site.Portfolio.Items {
			add(i.ImageURL)
		}
	}
	if site.Team != nil {
		for _, i := range site.Team.Items {
			add(i.ImageURL)
		}
	}
	if site.Testimonials != nil {
		for _, i := range site.Testimonials.Items {
			add(i.ImageURL)
		}
	}
	return urls
}
