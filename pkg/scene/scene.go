// Package scene loads surface trees from XML scene files, the declarative
// form containers use for child content:
//
//	<scene>
//	  <surface name="home" frame="0 0 320 480" stretch="true">
//	    <surface name="header" frame="0 0 320 64" alpha="0.95"/>
//	  </surface>
//	</scene>
//
// A scene holds exactly one root surface. Child surfaces nest, back to
// front. Attributes map onto surface properties: frame is "x y w h", alpha
// a float, and hidden, interactive, and stretch booleans; omitted attributes
// keep the surface defaults.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/go-drift/gantry/pkg/contain"
	"github.com/go-drift/gantry/pkg/geometry"
	"github.com/go-drift/gantry/pkg/surface"
)

// Load parses a scene document and returns its root surface.
func Load(r io.Reader) (*surface.Surface, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("scene: parse: %w", err)
	}
	root := xmlquery.FindOne(doc, "/scene")
	if root == nil {
		return nil, errors.New("scene: missing <scene> root")
	}
	surfaces := xmlquery.Find(root, "surface")
	if len(surfaces) != 1 {
		return nil, fmt.Errorf("scene: want exactly one root surface, have %d", len(surfaces))
	}
	return buildSurface(surfaces[0])
}

// LoadFile loads a scene from a file.
func LoadFile(path string) (*surface.Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Controller returns a controller that materializes its surface from the
// scene file at path on first access. Scene files ship with the program, so
// a missing or malformed file is a programmer error: it panics when the
// content is first materialized, not before.
func Controller(path string) *contain.ContentController {
	return &contain.ContentController{Build: func() *surface.Surface {
		root, err := LoadFile(path)
		if err != nil {
			panic(err.Error())
		}
		return root
	}}
}

func buildSurface(n *xmlquery.Node) (*surface.Surface, error) {
	var frame geometry.Rect
	if v := n.SelectAttr("frame"); v != "" {
		f, err := parseFrame(v)
		if err != nil {
			return nil, err
		}
		frame = f
	}
	s := surface.NewNamed(n.SelectAttr("name"), frame)

	if v := n.SelectAttr("alpha"); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("scene: surface %q: alpha %q: %w", s.Name(), v, err)
		}
		s.SetAlpha(a)
	}
	if err := boolAttr(n, "hidden", s.SetHidden); err != nil {
		return nil, err
	}
	if err := boolAttr(n, "interactive", s.SetInteractive); err != nil {
		return nil, err
	}
	if err := boolAttr(n, "stretch", s.SetStretch); err != nil {
		return nil, err
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		if child.Data != "surface" {
			return nil, fmt.Errorf("scene: unexpected element <%s> in surface %q", child.Data, s.Name())
		}
		c, err := buildSurface(child)
		if err != nil {
			return nil, err
		}
		s.AddChild(c)
	}
	return s, nil
}

// parseFrame parses a "x y w h" attribute value.
func parseFrame(v string) (geometry.Rect, error) {
	fields := strings.Fields(v)
	if len(fields) != 4 {
		return geometry.Rect{}, fmt.Errorf(`scene: frame %q: want "x y w h"`, v)
	}
	var nums [4]float64
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("scene: frame %q: %w", v, err)
		}
		nums[i] = f
	}
	return geometry.RectFromLTWH(nums[0], nums[1], nums[2], nums[3]), nil
}

func boolAttr(n *xmlquery.Node, name string, set func(bool)) error {
	v := n.SelectAttr(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("scene: %s %q: %w", name, v, err)
	}
	set(b)
	return nil
}
