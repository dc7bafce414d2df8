package formatter

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

// jsonAPI keeps output stable and leaves "&" in category names unescaped.
var jsonAPI = sonic.Config{SortMapKeys: true, NoNullSliceOrMap: true}.Froze()

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) Format(v interface{}) error {
	data, err := jsonAPI.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(f.w, string(data))
	return err
}
