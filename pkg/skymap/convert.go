package skymap

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"gocloud.dev/blob"

	"github.com/cdeil/hips/pkg/tile"
)

// ConvertOptions configures Convert.
type ConvertOptions struct {
	// Name identifies the survey in the generated preview page.
	// Default: "hips"
	Name string

	// OnTile, if set, is called after each tile has been written.
	OnTile func(meta tile.Meta)
}

// previewTemplate is the Aladin Lite page written as index.html, so the
// generated tree can be viewed directly in a browser.
const previewTemplate = `<link rel="stylesheet" href="http://aladin.u-strasbg.fr/AladinLite/api/v2/latest/aladin.min.css"/>
<script src="http://code.jquery.com/jquery-1.12.1.min.js"></script>
<script src="https://aladin.u-strasbg.fr/AladinLite/api/v2/latest/aladin.min.js"></script>

<div id="aladin-lite-div" style="width:400px;height:400px;"></div>

<script type="text/javascript">

    var aladin = A.aladin('#aladin-lite-div',
        {
            survey: '{{.Name}}',
            fov: 180,
            target: '0, 0',
            cooFrame: '{{.Frame}}'
        });

    aladin.setImageSurvey(
        aladin.createImageSurvey(
            '{{.Name}}', '{{.Name}}', '', '{{.Frame}}', 1, {imgFormat: '{{.Format}}'}
        )
    );

</script>
`

// previewPage renders the index.html payload for a survey.
func previewPage(name string, format tile.Format, frame tile.Frame) ([]byte, error) {
	tmpl, err := template.New("preview").Parse(previewTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse preview template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Name   string
		Format tile.Format
		Frame  tile.Frame
	}{Name: name, Format: format, Frame: frame})
	if err != nil {
		return nil, fmt.Errorf("render preview page: %w", err)
	}
	return buf.Bytes(), nil
}

// Convert writes the full HiPS tree for a map into a bucket: the
// "properties" survey descriptor and an index.html preview page, then every
// tile at its canonical path.
//
// The tile count is npix / tileWidth^2; the map must hold a whole number of
// tiles (see [Extract]). The first extraction, encoding or write error
// aborts the run; tiles written before the failure are left in place.
func Convert(ctx context.Context, m *Map, tileWidth int, bucket *blob.Bucket, format tile.Format, frame tile.Frame, opts ConvertOptions) error {
	props := tile.NewProperties(format, tileWidth, frame)
	if err := bucket.WriteAll(ctx, "properties", props.Encode(), nil); err != nil {
		return fmt.Errorf("write properties: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = "hips"
	}
	page, err := previewPage(name, format, frame)
	if err != nil {
		return err
	}
	if err := bucket.WriteAll(ctx, "index.html", page, nil); err != nil {
		return fmt.Errorf("write index.html: %w", err)
	}

	nTiles := m.Npix() / (tileWidth * tileWidth)
	for tileIndex := 0; tileIndex < nTiles; tileIndex++ {
		t, err := Extract(m, tileWidth, tileIndex, format, frame)
		if err != nil {
			return err
		}

		raw, err := t.Encode()
		if err != nil {
			return fmt.Errorf("encode %s: %w", t.Meta, err)
		}
		if err := bucket.WriteAll(ctx, t.Meta.Path(), raw, nil); err != nil {
			return fmt.Errorf("write %s: %w", t.Meta.Path(), err)
		}

		if opts.OnTile != nil {
			opts.OnTile(t.Meta)
		}
	}

	return nil
}
