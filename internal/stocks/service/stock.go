package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"library/internal/stocks/cache"
	"library/internal/stocks/calendar"
	stockerrors "library/internal/stocks/errors"
	"library/internal/stocks/events"
	"library/internal/stocks/repository"
	"library/internal/stocks/validator"
	"library/pkg/config"
	apperrors "library/pkg/errors"
	"library/pkg/model"
	"library/pkg/sanitizer"
)

const (
	msgBookNotFound  = "BookMst record not found."
	msgStockNotFound = "Stock record not found."
	msgStockExists   = "Stock record already exists."
)

type StockService interface {
	FindAll(ctx context.Context) ([]*model.Stock, error)
	FindAvailableAll(ctx context.Context) ([]*model.Stock, error)
	FindByID(ctx context.Context, id string) (*model.Stock, error)
	Save(ctx context.Context, req *model.StockRequest) (*model.Stock, error)
	Update(ctx context.Context, id string, req *model.StockRequest) error

	GenerateValues(ctx context.Context, year, month, daysInMonth int) ([]*model.CalendarSummary, error)
	GenerateDaysOfWeek(year, month, daysInMonth int) ([]string, error)
}

type stockService struct {
	stocks    repository.StockRepository
	books     repository.BookRepository
	validator *validator.StockValidator
	formatter *calendar.Formatter
	cache     cache.CalendarCache
	publisher events.Publisher
	cfg       *config.Config
}

func NewStockService(
	stocks repository.StockRepository,
	books repository.BookRepository,
	validator *validator.StockValidator,
	formatter *calendar.Formatter,
	calendarCache cache.CalendarCache,
	publisher events.Publisher,
	cfg *config.Config,
) StockService {
	if calendarCache == nil {
		calendarCache = cache.NewNoopCalendarCache()
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &stockService{
		stocks:    stocks,
		books:     books,
		validator: validator,
		formatter: formatter,
		cache:     calendarCache,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *stockService) FindAll(ctx context.Context) ([]*model.Stock, error) {
	return s.stocks.FindByDeletedAtIsNull(ctx)
}

func (s *stockService) FindAvailableAll(ctx context.Context) ([]*model.Stock, error) {
	return s.stocks.FindByDeletedAtIsNullAndStatus(ctx, model.StockAvailable)
}

// FindByID returns (nil, nil) when no stock has the id.
func (s *stockService) FindByID(ctx context.Context, id string) (*model.Stock, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Stock ID cannot be empty")
	}

	stock, err := s.stocks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, stockerrors.ErrStockNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return stock, nil
}

func (s *stockService) Save(ctx context.Context, req *model.StockRequest) (*model.Stock, error) {
	s.sanitize(req)
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Stock validation failed", "error", err)
		return nil, validationError(err)
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	stock := &model.Stock{
		ID:     id,
		BookID: req.BookID,
		Status: req.Status,
		Price:  req.Price,
	}

	err := s.stocks.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requireAbsent(txCtx, stock.ID); err != nil {
			return err
		}
		if err := s.requireBook(txCtx, req.BookID); err != nil {
			return err
		}
		return s.stocks.Save(txCtx, stock)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to save stock",
			"book_id", req.BookID,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Stock saved successfully",
		"id", stock.ID,
		"book_id", stock.BookID,
		"status", stock.Status.String(),
	)

	s.afterMutation(ctx, stock, s.publisher.StockCreated)
	return stock, nil
}

// Update overwrites status and price. The stock keeps its id and book.
func (s *stockService) Update(ctx context.Context, id string, req *model.StockRequest) error {
	id = sanitizer.NormalizeIdentifier(id)
	if id == "" {
		return apperrors.InvalidInput("Stock ID cannot be empty")
	}
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Stock validation failed", "id", id, "error", err)
		return validationError(err)
	}

	var updated *model.Stock
	err := s.stocks.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		stock, err := s.stocks.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, stockerrors.ErrStockNotFound) {
				return apperrors.NotFoundWithID("Stock", id, msgStockNotFound)
			}
			return err
		}

		if err := s.requireBook(txCtx, stock.BookID); err != nil {
			return err
		}

		stock.Status = req.Status
		stock.Price = req.Price
		if err := s.stocks.Save(txCtx, stock); err != nil {
			return err
		}
		updated = stock
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update stock",
			"id", id,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Stock updated successfully",
		"id", updated.ID,
		"status", updated.Status.String(),
		"price", updated.Price,
	)

	s.afterMutation(ctx, updated, s.publisher.StockUpdated)
	return nil
}

func (s *stockService) sanitize(req *model.StockRequest) {
	if req == nil {
		return
	}
	req.ID = sanitizer.NormalizeIdentifier(req.ID)
}

// requireAbsent keeps create from overwriting an existing stock, soft-deleted ones included.
func (s *stockService) requireAbsent(ctx context.Context, id string) error {
	_, err := s.stocks.FindByID(ctx, id)
	switch {
	case err == nil:
		return apperrors.Conflict("Stock", id, msgStockExists)
	case errors.Is(err, stockerrors.ErrStockNotFound):
		return nil
	default:
		return err
	}
}

func (s *stockService) requireBook(ctx context.Context, bookID int64) error {
	if _, err := s.books.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, stockerrors.ErrBookNotFound) {
			return apperrors.NotFoundWithID("BookMst", strconv.FormatInt(bookID, 10), msgBookNotFound)
		}
		return err
	}
	return nil
}

// afterMutation runs once the transaction has committed. Its failures are logged only.
func (s *stockService) afterMutation(ctx context.Context, stock *model.Stock, publish func(context.Context, *model.Stock) error) {
	if err := publish(ctx, stock); err != nil {
		s.cfg.Log.Error("Failed to publish stock event",
			"id", stock.ID,
			"error", err,
		)
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.cfg.Log.Warn("Failed to invalidate calendar cache", "error", err)
	}
}

func validationError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]any, len(verrs))
		for _, v := range verrs {
			fields[v.Field] = v.Message
		}
		return apperrors.Validation("Stock validation failed", fields)
	}
	return apperrors.Validation("Stock validation failed", map[string]any{"error": err.Error()})
}

func (s *stockService) GenerateDaysOfWeek(year, month, daysInMonth int) ([]string, error) {
	return s.formatter.DaysOfWeek(year, month, daysInMonth)
}

// GenerateValues builds one summary per catalog book, in catalog order.
func (s *stockService) GenerateValues(ctx context.Context, year, month, daysInMonth int) ([]*model.CalendarSummary, error) {
	if err := calendar.Validate(year, month, daysInMonth); err != nil {
		return nil, err
	}

	cached, ok, err := s.cache.Get(ctx, year, month, daysInMonth)
	if err != nil {
		s.cfg.Log.Warn("Failed to read calendar cache", "year", year, "month", month, "error", err)
	} else if ok {
		return cached, nil
	}

	books, err := s.books.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	values := make([]*model.CalendarSummary, 0, len(books))
	for _, book := range books {
		summary, err := s.summarize(ctx, book, year, month, daysInMonth)
		if err != nil {
			return nil, err
		}
		values = append(values, summary)
	}

	if err := s.cache.Set(ctx, year, month, daysInMonth, values); err != nil {
		s.cfg.Log.Warn("Failed to write calendar cache", "year", year, "month", month, "error", err)
	}

	s.cfg.Log.Debug("Calendar generated",
		"year", year,
		"month", month,
		"books", len(values),
	)
	return values, nil
}

func (s *stockService) summarize(ctx context.Context, book *model.Book, year, month, daysInMonth int) (*model.CalendarSummary, error) {
	available, err := s.stocks.FindByBookIDAndStatus(ctx, book.ID, model.StockAvailable)
	if err != nil {
		return nil, err
	}

	daily := make([]model.DailyAvailable, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := calendar.Date(year, month, day, s.formatter.Location())

		rows, err := s.stocks.FindLendableOnDate(ctx, book.ID, date)
		if err != nil {
			return nil, err
		}

		daily = append(daily, model.DailyAvailable{
			Date:          date,
			LendableCount: len(rows),
			StockID:       representative(rows),
		})
	}

	return &model.CalendarSummary{
		Title:       book.Title,
		TotalCount:  len(available),
		DailyDetail: daily,
	}, nil
}

// representative picks the lowest stock id, or nil when nothing is lendable.
func representative(rows []model.LendableStock) *string {
	if len(rows) == 0 {
		return nil
	}
	lowest := rows[0].StockID
	for _, r := range rows[1:] {
		if r.StockID < lowest {
			lowest = r.StockID
		}
	}
	return &lowest
}
