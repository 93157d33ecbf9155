package display

import (
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateFuncs are sprig's text functions plus the helpers of this package.
func TemplateFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["title"] = Title
	funcs["ago"] = Ago
	funcs["wrapTo"] = WrapTo
	funcs["indentTo"] = Indent
	funcs["capitalize"] = Capitalize
	return funcs
}

// ParseTemplate parses tmplStr with TemplateFuncs.
func ParseTemplate(name, tmplStr string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(TemplateFuncs()).Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	return tmpl, nil
}
