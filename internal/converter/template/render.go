package converter

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"text/template"

	"github.com/simoilconte/Bensine/internal/model"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var funcs = template.FuncMap{"field": field}

var (
	genericTemplate = mustParse("generic.tmpl")

	templates = map[string]*template.Template{
		model.TemplatePartRequestCreated: mustParse("part_request_created.tmpl"),
		model.TemplatePartRequestStatus:  mustParse("part_request_status.tmpl"),
	}
)

func mustParse(name string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/"+name))
}

type kv struct {
	Name  string
	Value any
}

type templateData struct {
	Key    string
	Data   map[string]any
	Fields []kv
}

// Render fills subject and body from the notification's template key. Unknown keys use a
// generic template listing the data keys in sorted order.
func Render(n model.Notification) (model.RenderedNotification, error) {
	tmpl, ok := templates[n.TemplateKey]
	if !ok {
		tmpl = genericTemplate
	}

	keys := make([]string, 0, len(n.Data))
	for k := range n.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := templateData{Key: n.TemplateKey, Data: n.Data}
	for _, k := range keys {
		data.Fields = append(data.Fields, kv{Name: k, Value: n.Data[k]})
	}

	subject, err := execute(tmpl, "subject", data)
	if err != nil {
		return model.RenderedNotification{}, err
	}
	body, err := execute(tmpl, "body", data)
	if err != nil {
		return model.RenderedNotification{}, err
	}

	return model.RenderedNotification{Notification: n, Subject: subject, Body: body}, nil
}

func execute(tmpl *template.Template, name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s/%s: %w", data.Key, name, err)
	}
	return buf.String(), nil
}

func field(data map[string]any, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return "-"
	}
	return fmt.Sprint(v)
}

type renderer struct{}

// NewRenderer exposes Render behind an interface for services that take one.
func NewRenderer() *renderer { return &renderer{} }

func (*renderer) Render(n model.Notification) (model.RenderedNotification, error) { return Render(n) }
