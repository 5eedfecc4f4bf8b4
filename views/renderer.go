package views

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"storefront/models"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// EstimatedTaxRate is applied to the server total for display only.
const EstimatedTaxRate = 0.08

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Renderer writes view data as a styled table, JSON or YAML.
type Renderer struct {
	w      io.Writer
	format string
}

func NewRenderer(w io.Writer, format string) (*Renderer, error) {
	switch format {
	case "", FormatTable:
		format = FormatTable
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return &Renderer{w: w, format: format}, nil
}

// CartSummary is a snapshot plus the display-only tax estimate.
type CartSummary struct {
	models.CartSnapshot
	EstimatedTax float64 `json:"estimated_tax"`
	GrandTotal   float64 `json:"grand_total"`
}

func SummarizeCart(snap models.CartSnapshot) CartSummary {
	tax := math.Round(snap.TotalPrice*EstimatedTaxRate*100) / 100
	return CartSummary{
		CartSnapshot: snap,
		EstimatedTax: tax,
		GrandTotal:   math.Round((snap.TotalPrice+tax)*100) / 100,
	}
}

func (r *Renderer) Products(products []models.Product) error {
	if r.format != FormatTable {
		return r.structured(products)
	}
	if len(products) == 0 {
		return r.line(mutedStyle.Render("No products found."))
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			optionalInt(p.Rank),
			p.ID,
			p.Name,
			money(p.Price),
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
			stock(p.Stock),
			optionalFloat(p.RankingScore),
		})
	}
	return r.table([]string{"#", "ID", "NAME", "PRICE", "RATING", "STOCK", "SCORE"}, rows)
}

func (r *Renderer) Product(p models.Product) error {
	if r.format != FormatTable {
		return r.structured(p)
	}
	return r.table([]string{"FIELD", "VALUE"}, [][]string{
		{"ID", p.ID},
		{"Name", p.Name},
		{"Description", p.Description},
		{"Category", p.Category},
		{"Price", money(p.Price)},
		{"Rating", strconv.FormatFloat(p.Rating, 'f', 1, 64)},
		{"Popularity", strconv.Itoa(p.Popularity)},
		{"Sold", strconv.Itoa(p.SalesCount)},
		{"Stock", stock(p.Stock)},
		{"Score", optionalFloat(p.RankingScore)},
	})
}

func (r *Renderer) Cart(snap models.CartSnapshot) error {
	summary := SummarizeCart(snap)
	if r.format != FormatTable {
		return r.structured(summary)
	}
	if snap.Empty() {
		return r.line(mutedStyle.Render("Your cart is empty."))
	}

	rows := make([][]string, 0, len(snap.Items))
	for _, item := range snap.Items {
		rows = append(rows, []string{
			item.ProductID,
			item.ProductName,
			money(item.UnitPrice),
			strconv.Itoa(item.Quantity),
			money(item.UnitPrice * float64(item.Quantity)),
		})
	}
	if err := r.table([]string{"ID", "PRODUCT", "PRICE", "QTY", "SUBTOTAL"}, rows); err != nil {
		return err
	}
	return r.line(fmt.Sprintf("Items: %d  Subtotal: %s  Est. tax: %s  %s",
		snap.TotalItems, money(snap.TotalPrice), money(summary.EstimatedTax),
		totalStyle.Render("Total: "+money(summary.GrandTotal))))
}

func (r *Renderer) Identities(ids []models.DemoIdentity) error {
	if r.format != FormatTable {
		return r.structured(ids)
	}
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{id.Name, id.Email})
	}
	return r.table([]string{"NAME", "EMAIL"}, rows)
}

func (r *Renderer) Session(s *models.Session) error {
	if r.format != FormatTable {
		return r.structured(s)
	}
	if s == nil {
		return r.line(mutedStyle.Render("Not logged in."))
	}
	return r.line(fmt.Sprintf("%s <%s> (%s)", s.DisplayName, s.Email, s.UserID))
}

func (r *Renderer) Count(n int) error {
	if r.format != FormatTable {
		return r.structured(map[string]int{"count": n})
	}
	return r.line(strconv.Itoa(n))
}

// Message writes a plain status line. Structured formats get {"message": ...}.
func (r *Renderer) Message(msg string) error {
	if r.format != FormatTable {
		return r.structured(map[string]string{"message": msg})
	}
	return r.line(msg)
}

func (r *Renderer) table(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return r.line(t.String())
}

func (r *Renderer) line(s string) error {
	_, err := fmt.Fprintln(r.w, s)
	return err
}

func (r *Renderer) structured(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if r.format == FormatJSON {
		return r.line(string(raw))
	}

	// Decoding the JSON as YAML keeps the wire field names and their order.
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	plainStyle(&node)
	out, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = r.w.Write(out)
	return err
}

// plainStyle drops the flow and quoting styles inherited from JSON. The
// encoder still quotes strings that would otherwise read back as numbers or bools.
func plainStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plainStyle(c)
	}
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

func stock(n int) string {
	if n == 0 {
		return "out of stock"
	}
	return strconv.Itoa(n)
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
