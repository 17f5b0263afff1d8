package screens

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/internal/api"
	"github.com/marespinozac/comanda/pkg/logger"
	"github.com/marespinozac/comanda/pkg/schedule"
	"github.com/marespinozac/comanda/pkg/term"
)

// Filter narrows which orders the kitchen board shows. It is re-derived on
// every render and never persisted.
type Filter string

const (
	FilterPending   Filter = "PENDING"
	FilterPreparing Filter = "PREPARING"
	FilterAll       Filter = "ALL"
)

// Kitchen is the order board for cooks (and, pointed at bar orders, for
// bartenders). It polls the order list while mounted; the poller dies with
// the screen's context.
type Kitchen struct {
	gw       *api.Client
	io       *term.IO
	station  string // "kitchen" or "bar", for logging only
	interval time.Duration

	mu     sync.Mutex
	orders []models.Order
	filter Filter
	poller *schedule.Poller
}

// NewKitchen builds the board with the PENDING filter active.
func NewKitchen(gw *api.Client, io *term.IO, station string, interval time.Duration) *Kitchen {
	return &Kitchen{
		gw:       gw,
		io:       io,
		station:  station,
		interval: interval,
		filter:   FilterPending,
	}
}

// Start loads the board and begins polling. Stop (or ctx cancellation) ends
// the polling; pairing every Start with Stop is the caller's job.
func (s *Kitchen) Start(ctx context.Context) {
	s.poller = schedule.Every(s.interval).
		Name(s.station + "-orders").
		Immediately().
		Start(ctx, func() {
			if err := s.Reload(ctx); err != nil {
				logger.Warn("kitchen: poll failed", "station", s.station, "error", err)
			}
		})
}

// Stop cancels the poller.
func (s *Kitchen) Stop() {
	if s.poller != nil {
		s.poller.Stop()
	}
}

// Reload fetches the order list.
func (s *Kitchen) Reload(ctx context.Context) error {
	orders, err := s.gw.Orders.List(ctx, nil)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

// SetFilter switches the active filter.
func (s *Kitchen) SetFilter(f Filter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// Filter returns the active filter.
func (s *Kitchen) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Filtered applies the active filter to the fetched set. ALL means every
// order still on the board: pending, preparing, or ready.
func (s *Kitchen) Filtered() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Order
	for _, o := range s.orders {
		switch s.filter {
		case FilterAll:
			if o.Status == models.StatusPending ||
				o.Status == models.StatusPreparing ||
				o.Status == models.StatusReady {
				out = append(out, o)
			}
		default:
			if string(o.Status) == string(s.filter) {
				out = append(out, o)
			}
		}
	}
	return out
}

// Counts reports how many fetched orders are pending and preparing, for the
// filter badges.
func (s *Kitchen) Counts() (pending, preparing int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		switch o.Status {
		case models.StatusPending:
			pending++
		case models.StatusPreparing:
			preparing++
		}
	}
	return pending, preparing
}

// StartPreparing moves a PENDING order to PREPARING after confirmation,
// then reloads the board. No optimistic update.
func (s *Kitchen) StartPreparing(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID,
		models.StatusPending, models.StatusPreparing,
		"Start preparing this order?")
}

// MarkReady moves a PREPARING order to READY after confirmation, then
// reloads the board.
func (s *Kitchen) MarkReady(ctx context.Context, orderID string) error {
	return s.transition(ctx, orderID,
		models.StatusPreparing, models.StatusReady,
		"Mark this order as ready?")
}

func (s *Kitchen) transition(ctx context.Context, orderID string, from, to models.Status, question string) error {
	order, ok := s.find(orderID)
	if !ok {
		return errors.New("no such order on the board")
	}
	if order.Status != from {
		return fmt.Errorf("order is %s, not %s", order.Status, from)
	}
	if !s.io.Confirm(question) {
		return nil
	}

	if err := s.gw.Orders.UpdateStatus(ctx, orderID, to); err != nil {
		return err
	}
	logger.Info("kitchen: status updated", "station", s.station, "order", orderID, "status", to)
	return s.Reload(ctx)
}

func (s *Kitchen) find(orderID string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

// ── Interactive loop ─────────────────────────────────────────────────────────

// Run starts polling, drives the board until the cook types "q", and
// guarantees the poller is stopped on the way out.
func (s *Kitchen) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.Start(ctx)
	defer s.Stop()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.render()
		line, err := s.io.Prompt("start <#>, ready <#>, f pending|preparing|all, r refresh, q back")
		if err != nil {
			return nil
		}

		switch {
		case line == "q" || line == "":
			return nil
		case line == "r":
			if err := s.Reload(ctx); err != nil {
				s.io.Println("error:", err)
			}
		case line == "f pending":
			s.SetFilter(FilterPending)
		case line == "f preparing":
			s.SetFilter(FilterPreparing)
		case line == "f all":
			s.SetFilter(FilterAll)
		default:
			s.command(ctx, line)
		}
	}
}

func (s *Kitchen) command(ctx context.Context, line string) {
	var idx int
	var verb string
	if _, err := fmt.Sscanf(line, "%s %d", &verb, &idx); err != nil {
		s.io.Println("unknown command")
		return
	}

	board := s.Filtered()
	if idx < 1 || idx > len(board) {
		s.io.Println("no such order")
		return
	}
	order := board[idx-1]

	var err error
	switch verb {
	case "start":
		err = s.StartPreparing(ctx, order.ID)
	case "ready":
		err = s.MarkReady(ctx, order.ID)
	default:
		s.io.Println("unknown command")
		return
	}
	if err != nil {
		s.io.Println("error:", err)
	}
}

func (s *Kitchen) render() {
	pending, preparing := s.Counts()
	s.io.Printf("\n── %s — pending %d · preparing %d · filter %s ──\n",
		s.station, pending, preparing, s.Filter())

	board := s.Filtered()
	if len(board) == 0 {
		s.io.Println("no orders")
		return
	}

	now := time.Now()
	for i, o := range board {
		s.io.Printf("%d) table %s  [%s]  %d min\n", i+1, o.TableNumber, o.Status, o.Age(now))
		for _, item := range o.Items {
			name := "product"
			if item.Product != nil {
				name = item.Product.Name
			}
			s.io.Printf("   %dx %s\n", item.Quantity, name)
			if item.Notes != "" {
				s.io.Printf("      note: %s\n", item.Notes)
			}
		}
		if o.Notes != "" {
			s.io.Printf("   notes: %s\n", o.Notes)
		}
	}
}
