package screens

import (
	"context"
	"strings"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/config"
	"github.com/marespinozac/comanda/internal/api"
	"github.com/marespinozac/comanda/internal/nav"
	"github.com/marespinozac/comanda/internal/session"
	"github.com/marespinozac/comanda/pkg/term"
)

// Shell is the navigation frame around the screens. It renders exactly one
// screen at a time; which tabs exist is nav's call, driven by the effective
// role.
type Shell struct {
	store *session.Store
	gw    *api.Client
	io    *term.IO
	nav   *nav.Nav
}

// NewShell builds the shell for the signed-in user.
func NewShell(store *session.Store, gw *api.Client, io *term.IO) *Shell {
	return &Shell{
		store: store,
		gw:    gw,
		io:    io,
		nav:   nav.New(store.User().Role),
	}
}

// Nav exposes navigation state, mostly for tests.
func (s *Shell) Nav() *nav.Nav { return s.nav }

// Run drives the shell until logout or quit. A session revoked mid-flight
// (401 anywhere) also ends the loop so the caller can fall back to login.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !s.store.Authenticated() {
			s.io.Println("session expired, please sign in again")
			return nil
		}

		s.render()
		line, err := s.io.Prompt("tab name, viewas <role|off>, logout, quit")
		if err != nil {
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit":
			return nil
		case "logout":
			if s.io.Confirm("Sign out?") {
				s.store.Logout()
				return nil
			}
		case "viewas":
			s.viewAs(fields)
		default:
			s.open(ctx, nav.Tab(fields[0]))
		}
	}
}

func (s *Shell) viewAs(fields []string) {
	if !s.nav.CanViewAs() {
		s.io.Println("only managers can switch views")
		return
	}
	if len(fields) < 2 || fields[1] == "off" {
		s.nav.ViewAs("")
		return
	}
	role := models.Role(strings.ToUpper(fields[1]))
	if !s.nav.ViewAs(role) {
		s.io.Println("unknown role")
	}
}

func (s *Shell) open(ctx context.Context, tab nav.Tab) {
	if !s.nav.Activate(tab) {
		s.io.Println("unknown tab")
		return
	}

	var err error
	switch tab {
	case nav.TabSales:
		err = NewWaiter(s.gw, s.io, s.store.User(), config.TableCount()).Run(ctx)
	case nav.TabProducts:
		err = NewProducts(s.gw, s.io).Run(ctx)
	case nav.TabCategories:
		err = NewCategories(s.gw, s.io).Run(ctx)
	case nav.TabKitchen:
		err = NewKitchen(s.gw, s.io, "kitchen", config.PollInterval()).Run(ctx)
	case nav.TabBar:
		err = NewKitchen(s.gw, s.io, "bar", config.PollInterval()).Run(ctx)
	case nav.TabReports, nav.TabSettings:
		s.io.Println("this section is not available yet")
	}
	if err != nil && ctx.Err() == nil {
		s.io.Println("error:", err)
	}
}

func (s *Shell) render() {
	user := s.store.User()
	s.io.Printf("\n═══ comanda — %s (%s)", user.FullName, user.Role)
	if sim := s.nav.Simulating(); sim != "" {
		s.io.Printf(" viewing as %s", sim)
	}
	s.io.Printf(" ═══\ntabs:")
	for _, t := range s.nav.Visible() {
		marker := " "
		if t == s.nav.Active() {
			marker = "*"
		}
		s.io.Printf(" %s%s", marker, t)
	}
	s.io.Println()
}
