// Package shop implements the interactive storefront terminal client
// using bubbletea.
package shop

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"shopfront/cmd/shopfront/ui"
	"shopfront/internal/assistant"
	"shopfront/internal/cart"
	"shopfront/internal/catalog"
)

type viewMode int

const (
	modeBrowse viewMode = iota
	modeChat
)

// Messages for tea updates.
type (
	stateChangedMsg  struct{}
	catalogLoadedMsg []catalog.Product
	catalogErrMsg    struct{ err error }
)

// Model is the root bubbletea model for the storefront client.
type Model struct {
	// UI components
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	// Backend
	controller *assistant.Controller
	cart       *cart.Store
	catalogSvc catalog.Service

	// State
	mode    viewMode
	all     []catalog.Product
	cursor  int
	loading bool
	err     error
	width   int
	height  int
	ready   bool
}

// New builds the storefront model around an assistant controller and a
// catalog service. The controller owns all conversation and search state;
// the model only renders it.
func New(ctrl *assistant.Controller, catalogSvc catalog.Service, styles ui.Styles) Model {
	ti := textinput.New()
	ti.Placeholder = "Press / to search, tab to chat"
	ti.Prompt = "│ "
	ti.CharLimit = 512
	ti.Width = 80
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.UserInput

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)
	vp.SetContent("")

	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(80),
		)
	}

	return Model{
		input:      ti,
		viewport:   vp,
		spinner:    sp,
		styles:     styles,
		renderer:   renderer,
		controller: ctrl,
		cart:       cart.NewStore(),
		catalogSvc: catalogSvc,
		mode:       modeBrowse,
		loading:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.loadCatalog(),
		m.waitForUpdate(),
	)
}

// loadCatalog fetches the full product list once at startup.
func (m Model) loadCatalog() tea.Cmd {
	svc := m.catalogSvc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		products, err := svc.List(ctx)
		if err != nil {
			return catalogErrMsg{err}
		}
		return catalogLoadedMsg(products)
	}
}

// waitForUpdate blocks on the controller's coalesced update channel and
// re-arms itself after every delivery.
func (m Model) waitForUpdate() tea.Cmd {
	ch := m.controller.Updates()
	return func() tea.Msg {
		<-ch
		return stateChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.controller.Close()
			return m, tea.Quit

		case tea.KeyTab:
			if m.mode == modeBrowse {
				m.mode = modeChat
				m.input.Placeholder = "Ask the assistant... (Enter to send)"
				m.input.Focus()
				m.refreshChatViewport()
			} else {
				m.mode = modeBrowse
				m.input.Placeholder = "Press / to search, tab to chat"
				m.input.Blur()
				m.input.Reset()
			}
			return m, nil

		case tea.KeyCtrlR:
			if m.mode == modeChat {
				m.controller.Restart()
				m.refreshChatViewport()
			}
			return m, nil

		case tea.KeyEsc:
			if m.input.Focused() && m.mode == modeBrowse {
				m.input.Blur()
				m.input.Reset()
				return m, nil
			}
			if m.mode == modeChat {
				m.mode = modeBrowse
				m.input.Blur()
				m.input.Reset()
			}
			return m, nil

		case tea.KeyEnter:
			return m.handleEnter()

		case tea.KeyUp:
			if !m.input.Focused() && m.cursor > 0 {
				m.cursor--
				return m, nil
			}

		case tea.KeyDown:
			if !m.input.Focused() && m.cursor < m.listLength()-1 {
				m.cursor++
				return m, nil
			}
		}

		if !m.input.Focused() && m.mode == modeBrowse {
			return m.handleBrowseKey(msg)
		}
		m.input, tiCmd = m.input.Update(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 2
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight-footerHeight-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - headerHeight - footerHeight - inputHeight
		}
		m.input.Width = msg.Width - 4

		if m.renderer != nil {
			m.renderer, _ = glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(msg.Width-8),
			)
		}
		m.refreshChatViewport()

	case spinner.TickMsg:
		if m.busy() {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case stateChangedMsg:
		// Controller state moved; clamp the cursor to the new result
		// set and keep listening.
		if n := len(m.visibleProducts()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		m.refreshChatViewport()
		return m, tea.Batch(m.waitForUpdate(), m.spinner.Tick)

	case catalogLoadedMsg:
		m.loading = false
		m.all = msg
		m.cursor = 0

	case catalogErrMsg:
		m.loading = false
		m.err = msg.err
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.mode == modeChat {
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.controller.SendMessage(text)
		m.input.Reset()
		m.refreshChatViewport()
		return m, m.spinner.Tick
	}

	if m.input.Focused() {
		query := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		m.input.Reset()
		if query != "" {
			m.controller.SubmitSearch(query)
			m.cursor = 0
			return m, m.spinner.Tick
		}
		return m, nil
	}

	// Browsing with the input blurred: enter adds the selection.
	return m.addSelection()
}

// handleBrowseKey processes plain letter keys while browsing.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.input.Placeholder = "Search products... (Enter to search, Esc to cancel)"
		m.input.Focus()
		return m, textinput.Blink
	case "q":
		m.controller.Close()
		return m, tea.Quit
	case "a":
		return m.addSelection()
	case "c":
		m.cart.Toggle()
		return m, nil
	case "+":
		if line, ok := m.selectedCartLine(); ok {
			m.cart.SetQuantity(line.Product.ID, line.Quantity+1)
		}
		return m, nil
	case "-":
		if line, ok := m.selectedCartLine(); ok {
			m.cart.SetQuantity(line.Product.ID, line.Quantity-1)
		}
		return m, nil
	case "x":
		if line, ok := m.selectedCartLine(); ok {
			m.cart.Remove(line.Product.ID)
		}
		return m, nil
	case "C":
		m.cart.Clear()
		return m, nil
	}
	return m, nil
}

func (m Model) addSelection() (tea.Model, tea.Cmd) {
	products := m.visibleProducts()
	if m.cursor < len(products) {
		m.cart.Add(products[m.cursor])
	}
	return m, nil
}

// selectedCartLine maps the browse cursor onto the cart when the cart
// panel is open. Quantity keys only apply there.
func (m Model) selectedCartLine() (cart.Line, bool) {
	if !m.cart.IsOpen() {
		return cart.Line{}, false
	}
	lines := m.cart.Lines()
	if len(lines) == 0 {
		return cart.Line{}, false
	}
	idx := m.cursor
	if idx >= len(lines) {
		idx = len(lines) - 1
	}
	return lines[idx], true
}

// visibleProducts is the list the browse pane shows: search results once
// a search has completed, the full catalog before that.
func (m Model) visibleProducts() []catalog.Product {
	if m.cart.IsOpen() {
		return nil
	}
	results := m.controller.Results()
	if results.Performed {
		return results.Products
	}
	return m.all
}

// listLength is the size of whichever list the cursor moves over.
func (m Model) listLength() int {
	if m.cart.IsOpen() {
		return m.cart.Len()
	}
	return len(m.visibleProducts())
}

func (m Model) busy() bool {
	return m.loading || m.controller.ChatPending() || m.controller.SearchPending()
}

func (m *Model) refreshChatViewport() {
	if m.mode != modeChat {
		return
	}
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

func (m Model) renderConversation() string {
	var sb strings.Builder
	for _, msg := range m.controller.Conversation() {
		if msg.Role == assistant.RoleUser {
			sb.WriteString(m.styles.Bold.Foreground(m.styles.Theme.Primary).Render("You") + "\n")
			sb.WriteString(m.styles.UserInput.Render(msg.Body))
			sb.WriteString("\n\n")
			continue
		}
		sb.WriteString(m.styles.Bold.Foreground(m.styles.Theme.Accent).Render("🛍️ Assistant") + "\n")
		sb.WriteString(m.safeRenderMarkdown(msg.Body))
		sb.WriteString("\n")
		for _, p := range msg.Products {
			sb.WriteString("  " + m.renderProductLine(p, false) + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery, falling back
// to the raw text.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()
	if m.renderer != nil && content != "" {
		if rendered, err := m.renderer.Render(content); err == nil {
			return rendered
		}
	}
	return content
}

func (m Model) View() string {
	if !m.ready {
		return "Loading shopfront..."
	}

	header := m.renderHeader()

	var content string
	switch {
	case m.cart.IsOpen():
		content = m.renderCart()
	case m.mode == modeChat:
		content = m.styles.Content.Render(m.viewport.View())
	default:
		content = m.renderBrowse()
	}

	if m.busy() {
		content += "\n" + m.styles.Spinner.Render(m.spinner.View()) + " Working..."
	}
	if m.err != nil {
		content += "\n" + m.styles.Error.Render("Error: "+m.err.Error())
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Accent).
		Padding(0, 1)
	inputArea := inputStyle.Render(m.input.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		inputArea,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" 🛍️ shopfront ")
	cartBadge := m.styles.Badge.Render(fmt.Sprintf("🛒 %d items · $%s",
		m.cart.TotalItems(), m.cart.TotalPrice().StringFixed(2)))

	var status string
	if m.busy() {
		status = m.styles.Warning.Render("● Working")
	} else {
		status = m.styles.Success.Render("● Ready")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", cartBadge, " ", status)
}

func (m Model) renderBrowse() string {
	products := m.visibleProducts()
	results := m.controller.Results()

	var sb strings.Builder
	if results.Performed {
		if len(products) == 0 {
			sb.WriteString(m.styles.Muted.Render(
				fmt.Sprintf("No products found for %q. Try another search.", results.Query)))
			return m.styles.Content.Render(sb.String())
		}
		sb.WriteString(m.styles.Title.Render(
			fmt.Sprintf("Results for %q (%d)", results.Query, results.Total)))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.styles.Title.Render("Catalog"))
		sb.WriteString("\n")
	}

	visible := m.listWindow(len(products))
	for i := visible.start; i < visible.end; i++ {
		sb.WriteString(m.renderProductLine(products[i], i == m.cursor))
		sb.WriteString("\n")
	}
	return m.styles.Content.Render(sb.String())
}

type window struct{ start, end int }

// listWindow keeps the cursor inside the rendered slice of a long list.
func (m Model) listWindow(total int) window {
	maxRows := m.height - 11
	if maxRows < 4 {
		maxRows = 4
	}
	if total <= maxRows {
		return window{0, total}
	}
	start := m.cursor - maxRows/2
	if start < 0 {
		start = 0
	}
	end := start + maxRows
	if end > total {
		end = total
		start = end - maxRows
	}
	return window{start, end}
}

func (m Model) renderProductLine(p catalog.Product, selected bool) string {
	price := m.styles.Price.Render("$" + p.Price.StringFixed(2))
	meta := m.styles.Muted.Render(fmt.Sprintf("%s · %s · ⭐ %.1f", p.Brand, p.Category, p.Rating))
	name := p.Name
	if selected {
		return m.styles.Selected.Render("▸ "+name) + "  " + price + "  " + meta
	}
	return m.styles.Body.Render("  "+name) + "  " + price + "  " + meta
}

func (m Model) renderCart() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Your Cart"))
	sb.WriteString("\n")

	lines := m.cart.Lines()
	if len(lines) == 0 {
		sb.WriteString(m.styles.Muted.Render("Your cart is empty. Press c to go back and browse."))
		return m.styles.Content.Render(sb.String())
	}

	for i, line := range lines {
		marker := "  "
		if i == m.cursor || (m.cursor >= len(lines) && i == len(lines)-1) {
			marker = m.styles.Selected.Render("▸ ")
		}
		sb.WriteString(fmt.Sprintf("%s%s  ×%d  %s\n",
			marker,
			m.styles.Body.Render(line.Product.Name),
			line.Quantity,
			m.styles.Price.Render("$"+line.Subtotal().StringFixed(2))))
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Bold.Render(fmt.Sprintf("Total: %d items · $%s",
		m.cart.TotalItems(), m.cart.TotalPrice().StringFixed(2))))
	return m.styles.Content.Render(sb.String())
}

func (m Model) renderFooter() string {
	var help string
	switch {
	case m.cart.IsOpen():
		help = "↑/↓ select · +/- quantity · x remove · C clear · c close cart · ctrl+c quit"
	case m.mode == modeChat:
		help = "enter send · ctrl+r new conversation · tab/esc browse · ctrl+c quit"
	default:
		help = "↑/↓ move · enter/a add to cart · / search · c cart · tab chat · q quit"
	}
	return m.styles.Footer.Render(help)
}
