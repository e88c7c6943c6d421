package template

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	orderCreatedTemplate  = "order_created.tmpl"
	statusChangedTemplate = "status_changed.tmpl"
)

//go:embed data/*.tmpl
var templates embed.FS

// IST is the store's local time zone.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// markdown escapes the characters legacy Telegram Markdown treats as entity delimiters.
var markdown = strings.NewReplacer(`_`, `\_`, `*`, `\*`, "`", "\\`", `[`, `\[`)

var statusEmoji = map[domain.OrderStatus]string{
	domain.OrderStatusReceived:       "📥",
	domain.OrderStatusProcessing:     "⚙️",
	domain.OrderStatusOutForDelivery: "🚚",
	domain.OrderStatusDelivered:      "✅",
}

// Engine renders order notifications in Telegram Markdown.
type Engine struct {
	tmpl *template.Template
}

func NewEngine() (*Engine, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
		"datetime": func(t time.Time) string {
			return t.In(IST).Format("02/01/2006, 3:04:05 pm")
		},
		"upper": func(s domain.OrderStatus) string {
			return strings.ToUpper(string(s))
		},
		"emoji": func(s domain.OrderStatus) string {
			return statusEmoji[s]
		},
		"md": markdown.Replace,
	}

	tmpl, err := template.New("notifications").Funcs(funcs).ParseFS(templates, "data/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("template.ParseFS: %w", err)
	}

	return &Engine{tmpl: tmpl}, nil
}

func (e *Engine) OrderCreated(order domain.Order) (string, error) {
	return e.render(orderCreatedTemplate, BuildOrderData(order))
}

// StatusChanged renders a status update; UpdatedAt falls back to now when the order has none.
func (e *Engine) StatusChanged(order domain.Order) (string, error) {
	data := BuildOrderData(order)
	if data.UpdatedAt.IsZero() {
		data.UpdatedAt = time.Now()
	}

	return e.render(statusChangedTemplate, data)
}

func (e *Engine) render(name string, data OrderData) (string, error) {
	var buf bytes.Buffer

	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("tmpl.ExecuteTemplate[%s]: %w", name, err)
	}

	return buf.String(), nil
}
