package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	once       sync.Once
)

// GetTranslator returns the process wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
		if initErr != nil {
			initErr = fmt.Errorf("failed to create shader translator: %w", initErr)
		}
	})
	return translator, initErr
}

// Translated is a shader in the driver's dialect plus the names the
// translator assigned to the original identifiers.
type Translated struct {
	Code   string
	Mapped map[string]string
}

// MappedName returns the translated identifier for name, or name itself.
func (t *Translated) MappedName(name string) string {
	if m, ok := t.Mapped[name]; ok && m != "" {
		return m
	}
	return name
}

// Translate converts an ES 1.00 shader of the given stage ("vertex" or
// "fragment") to GLSL 4.10, or to ESSL when gles is set.
func Translate(src, stage string, gles bool) (*Translated, error) {
	tr, err := GetTranslator()
	if err != nil {
		return nil, err
	}
	format := gst.OutputFormatGLSL410
	if gles {
		format = gst.OutputFormatESSL
	}
	res, err := tr.TranslateShader(src, stage, gst.ShaderSpecWebGL2, format)
	if err != nil {
		return nil, fmt.Errorf("failed to translate %s shader: %w", stage, err)
	}
	out := &Translated{Code: res.Code, Mapped: make(map[string]string, len(res.Variables))}
	for name, v := range res.Variables {
		out.Mapped[name] = v.MappedName
	}
	return out, nil
}
