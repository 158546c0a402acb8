package service

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/internal/aggregate"
	"github.com/mmynk/fairshare/internal/money"
	"github.com/mmynk/fairshare/pkg/api"
	"github.com/mmynk/fairshare/pkg/api/apiconnect"
)

// AnalyticsService implements the Connect AnalyticsService. It is stateless:
// every request carries the snapshot of transactions it summarizes.
type AnalyticsService struct {
	apiconnect.UnimplementedAnalyticsServiceHandler
	opts options
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(opts ...Option) *AnalyticsService {
	return &AnalyticsService{opts: newOptions(opts)}
}

// Summarize rolls transactions, reminders and envelopes up into the dashboard
// and history figures.
func (s *AnalyticsService) Summarize(ctx context.Context, req *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error) {
	loc := s.opts.location

	txs, err := fromAPITransactions(req.Msg.Transactions, loc)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	reminders, err := fromAPIReminders(req.Msg.Reminders, loc)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	envelopes, err := fromAPIEnvelopes(req.Msg.Envelopes)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	// Every total below is a sum of these amounts.
	amounts := make([]money.Money, 0, len(txs)+len(envelopes))
	for _, tx := range txs {
		amounts = append(amounts, tx.Amount)
	}
	for _, e := range envelopes {
		amounts = append(amounts, e.Allocated)
	}
	if err := checkTotal("transactions and envelopes", amounts); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	now := s.opts.now().In(loc)
	if req.Msg.Now != "" {
		if now, err = parseDate(req.Msg.Now, loc); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	var cycleStart *time.Time
	if req.Msg.CycleStart != "" {
		start, err := parseDate(req.Msg.CycleStart, loc)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		cycleStart = &start
	}

	limit := req.Msg.ReminderLimit
	if limit == 0 {
		limit = aggregate.DefaultReminderLimit
	}

	months := aggregate.MonthlyBuckets(txs, loc)
	resp := &api.SummarizeResponse{
		Categories: toAPICategories(aggregate.CategoryTotals(txs)),
		Trend:      toAPITrend(aggregate.DailyTrend(txs, loc)),
		Months:     toAPIMonths(months),
		ChartFeed:  toAPIMonths(aggregate.ChartFeed(months)),
		Reminders:  toAPIReminders(aggregate.UpcomingReminders(reminders, now, limit)),
		Envelopes:  toAPIEnvelopes(aggregate.EnvelopeUsage(envelopes, txs)),
		Dashboard:  toAPIDashboard(aggregate.Dashboard(txs, cycleStart, now)),
	}

	s.opts.logger.DebugContext(ctx, "Summarized transactions",
		"transactions", len(txs), "months", len(months), "burn_rate", resp.Dashboard.BurnRateStatus)
	return connect.NewResponse(resp), nil
}
