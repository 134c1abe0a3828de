package summary

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/slethware/atlas/internal/config"
	"github.com/slethware/atlas/internal/country/domain"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	cardWidth  = 800
	cardHeight = 480
)

// Renderer draws the catalog summary card as a PNG and keeps the latest
// rendition in memory.
type Renderer struct {
	log       *zap.Logger
	titleFace font.Face
	bodyFace  font.Face

	mu    sync.RWMutex
	image []byte
}

func NewRenderer(cfg config.Config, log *zap.Logger) (Generator, error) {
	r := &Renderer{
		log:       log.Named("summary.renderer"),
		titleFace: basicfont.Face7x13,
		bodyFace:  basicfont.Face7x13,
	}

	if cfg.SummaryFontPath != "" {
		raw, err := os.ReadFile(cfg.SummaryFontPath)
		if err != nil {
			return nil, fmt.Errorf("read summary font: %w", err)
		}
		parsed, err := truetype.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse summary font: %w", err)
		}
		r.titleFace = truetype.NewFace(parsed, &truetype.Options{Size: 28})
		r.bodyFace = truetype.NewFace(parsed, &truetype.Options{Size: 18})
	}

	return r, nil
}

func (r *Renderer) Generate(ctx context.Context, top []domain.Country, total int64, lastRefreshedAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetRGB(0.09, 0.11, 0.16)
	dc.Clear()

	dc.SetRGB(0.95, 0.95, 0.97)
	dc.SetFontFace(r.titleFace)
	dc.DrawString("Country Catalog Summary", 40, 60)

	dc.SetFontFace(r.bodyFace)
	dc.DrawString(fmt.Sprintf("Total countries: %d", total), 40, 110)

	refreshed := "never"
	if lastRefreshedAt != nil {
		refreshed = lastRefreshedAt.UTC().Format(time.RFC3339)
	}
	dc.DrawString("Last refreshed: "+refreshed, 40, 140)

	dc.SetRGB(0.75, 0.78, 0.85)
	dc.DrawString("Top countries by estimated GDP", 40, 200)

	dc.SetRGB(0.95, 0.95, 0.97)
	y := 240.0
	for i, c := range top {
		line := fmt.Sprintf("%d. %s - %s", i+1, c.Name, formatGDP(c.EstimatedGDP))
		dc.DrawString(line, 60, y)
		y += 40
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encode summary image: %w", err)
	}

	r.mu.Lock()
	r.image = buf.Bytes()
	r.mu.Unlock()

	r.log.Debug("summary image rendered",
		zap.Int64("total", total),
		zap.Int("top", len(top)),
		zap.Int("bytes", buf.Len()),
	)
	return nil
}

func (r *Renderer) Image() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.image == nil {
		return nil, ErrNotGenerated
	}
	return r.image, nil
}

func formatGDP(gdp *float64) string {
	if gdp == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *gdp)
}
