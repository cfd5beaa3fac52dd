package cli

import (
	"fmt"

	"github.com/gogpu/codeshot"
	"github.com/gogpu/codeshot/gist"
	"github.com/gogpu/codeshot/internal/config"
	"github.com/gogpu/codeshot/text"
)

// rendererOptions maps render settings to renderer options.
func rendererOptions(r config.Render) ([]codeshot.Option, error) {
	opts := []codeshot.Option{
		codeshot.WithTheme(r.Theme),
		codeshot.WithTabWidth(r.TabWidth),
		codeshot.WithLineNumbers(r.LineNumbers),
		codeshot.WithResultCache(r.ResultCache),
		codeshot.WithLayout(text.LayoutConfig{
			FontSize:   r.FontSize,
			LineHeight: r.LineHeight,
			Scale:      r.Scale,
		}),
	}
	if r.FontPath != "" {
		src, err := text.NewFontSourceFromFile(r.FontPath)
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		opts = append(opts, codeshot.WithFont(src))
	}
	return opts, nil
}

// storeConfig maps store settings to a gist backend configuration.
func storeConfig(s config.Store) gist.Config {
	return gist.Config{
		Driver:        s.Driver,
		Retention:     s.Retention,
		RedisURL:      s.RedisURL,
		MongoURI:      s.MongoURI,
		MongoDatabase: s.MongoDatabase,
	}
}
