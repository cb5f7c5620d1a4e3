// Package batch drives invoice generation over a list of orders: one
// generator per order, bounded concurrency, and notification dispatch
// for every successfully generated invoice. A single order's failure
// never stops the rest of the batch.
package batch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/maxerler/invoice-generator/internal/config"
	"github.com/maxerler/invoice-generator/internal/document"
	"github.com/maxerler/invoice-generator/internal/models"
	"github.com/maxerler/invoice-generator/internal/notify"
)

// Failure records one order that could not be processed, with enough
// context to locate the offending record.
type Failure struct {
	OrderNumber string
	FilePath    string
	Err         error
}

// Runner generates and dispatches invoices for a batch of orders.
type Runner struct {
	cfg      *config.InvoiceConfig
	company  models.Company
	renderer document.Renderer
	sender   notify.Sender
	workers  int
	logger   *zap.Logger

	mu       sync.Mutex
	failures []Failure
}

// NewRunner creates a batch runner. workers caps how many invoices
// are generated concurrently; values below one are treated as one.
func NewRunner(cfg *config.InvoiceConfig, company models.Company, renderer document.Renderer,
	sender notify.Sender, workers int, logger *zap.Logger) *Runner {

	if workers < 1 {
		workers = 1
	}
	return &Runner{
		cfg:      cfg,
		company:  company,
		renderer: renderer,
		sender:   sender,
		workers:  workers,
		logger:   logger,
	}
}

// Run processes every order and returns the collected failures. Each
// invoice's state is independent; orders only share the read-only
// configuration and company, so workers never contend beyond the
// failure list. Derived file names are unique per order number and
// date, so concurrent workers never write the same path.
func (r *Runner) Run(ctx context.Context, orders []models.Order, performanceDate time.Time) []Failure {
	r.failures = nil

	jobs := make(chan models.Order)
	var wg sync.WaitGroup

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for order := range jobs {
				r.process(ctx, order, performanceDate)
			}
		}()
	}

	for _, order := range orders {
		jobs <- order
	}
	close(jobs)
	wg.Wait()

	return r.failures
}

func (r *Runner) process(ctx context.Context, order models.Order, performanceDate time.Time) {
	generator, err := document.NewGenerator(r.cfg, r.company, order, performanceDate, r.renderer)
	if err != nil {
		r.record(order.Number, "", err)
		return
	}

	if err := generator.Generate(ctx); err != nil {
		r.record(order.Number, "", err)
		return
	}

	id, err := generator.ID()
	if err != nil {
		r.record(order.Number, "", err)
		return
	}
	filePath, err := generator.FilePath()
	if err != nil {
		r.record(order.Number, "", err)
		return
	}

	r.logger.Info("Invoice generated",
		zap.String("invoice_id", id),
		zap.String("order_number", order.Number),
		zap.String("file_path", filePath))

	customer := order.Customer
	if err := r.sender.Send(ctx, customer.Contact.Email, customer.LastName, id, filePath); err != nil {
		r.record(order.Number, filePath, err)
	}
}

func (r *Runner) record(orderNumber, filePath string, err error) {
	r.logger.Error("Order failed",
		zap.String("order_number", orderNumber),
		zap.String("file_path", filePath),
		zap.Error(err))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, Failure{OrderNumber: orderNumber, FilePath: filePath, Err: err})
}
