package generator

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/nfnt/resize"

	"git.home.luguber.info/inful/webdoc/internal/logfields"
	"git.home.luguber.info/inful/webdoc/internal/render"
	"git.home.luguber.info/inful/webdoc/internal/templates"
)

// stagePrepareAssets copies local screenshots into the assets directory as
// PNG, scaled down to AssetMaxWidth, and points each page at its copy.
// Screenshots that cannot be read stay referenced as given.
func stagePrepareAssets(ctx context.Context, rs *runState) error {
	dirs := rs.def.Structure.Directories
	files := rs.def.Structure.Files

	var failed int
	for i := range rs.context.Pages {
		if err := ctx.Err(); err != nil {
			return newCanceledStageError(StagePrepareAssets, err)
		}
		page := &rs.context.Pages[i]
		if page.Screenshot == "" || isRemote(page.Screenshot) {
			continue
		}

		assetPath, ok := templates.UnderRoot(".", path.Join(dirs.Assets, page.ID+".png"))
		if !ok {
			return fmt.Errorf("asset path for page %s escapes the output directory", page.ID)
		}

		data, err := scaledPNG(resolveLocal(rs.opts.ScreenshotDir, page.Screenshot), rs.opts.AssetMaxWidth)
		if err != nil {
			failed++
			rs.logger.Warn("Keeping original screenshot reference",
				logfields.PageID(page.ID),
				logfields.Path(page.Screenshot),
				logfields.Error(err))
			continue
		}

		rs.assets = append(rs.assets, render.File{Path: assetPath, Content: data})
		if overview, ok := overviewPath(rs, page.ID, files.PageOverview); ok {
			page.Screenshot = templates.RelativeLink(overview, assetPath)
		} else {
			page.Screenshot = assetPath
		}
	}

	if failed > 0 {
		return newWarnStageError(StagePrepareAssets, fmt.Errorf("%d screenshot(s) could not be prepared", failed))
	}
	return nil
}

func isRemote(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && u.Scheme != "" && len(u.Scheme) > 1
}

func resolveLocal(dir, ref string) string {
	p := filepath.FromSlash(ref)
	if filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}

func overviewPath(rs *runState, pageID, pattern string) (string, bool) {
	if pattern == "" {
		return "", false
	}
	return templates.UnderRoot(rs.def.Structure.Directories.Root,
		templates.ExpandPattern(pattern, templates.PageIDPlaceholder, pageID))
}

// scaledPNG decodes the image at p and re-encodes it as PNG, no wider than maxWidth.
func scaledPNG(p string, maxWidth int) ([]byte, error) {
	f, err := os.Open(filepath.Clean(p))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode %s: %w", p, err)
	}
	return buf.Bytes(), nil
}
