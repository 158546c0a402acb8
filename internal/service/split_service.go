package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/internal/calculator"
	"github.com/mmynk/fairshare/internal/middleware"
	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
	"github.com/mmynk/fairshare/internal/owner"
	"github.com/mmynk/fairshare/internal/storage"
	"github.com/mmynk/fairshare/pkg/api"
	"github.com/mmynk/fairshare/pkg/api/apiconnect"
)

// SplitService implements the Connect SplitService
type SplitService struct {
	apiconnect.UnimplementedSplitServiceHandler
	store storage.Store
	opts  options
}

// NewSplitService creates a new SplitService with the given storage backend.
func NewSplitService(store storage.Store, opts ...Option) *SplitService {
	return &SplitService{store: store, opts: newOptions(opts)}
}

func (s *SplitService) fail(procedure string, err error) error {
	return toConnectError(s.opts.logger, s.opts.metrics, procedure, err)
}

// computed is everything derived from a group's expenses and payments.
type computed struct {
	balances    []models.MemberBalance
	settlements []models.Settlement
	total       money.Money
	summary     string
}

func (s *SplitService) compute(members []string, records []models.ExpenseRecord, payments []models.Payment) (*computed, error) {
	balances, settlements, err := calculator.CalculateGroupBalances(members, records, payments)
	if err != nil {
		return nil, err
	}
	s.opts.metrics.SettlementsComputed(len(settlements))

	var total money.Money
	for _, r := range records {
		total += r.Amount
	}
	return &computed{
		balances:    balances,
		settlements: settlements,
		total:       total,
		summary:     calculator.Summarize(records, balances, s.opts.formatter),
	}, nil
}

// Analyze computes balances and settlements for a list of expenses without
// storing anything, and proposes the current user's share drafts when the
// user can be identified among the participants.
func (s *SplitService) Analyze(ctx context.Context, req *connect.Request[api.AnalyzeRequest]) (*connect.Response[api.AnalyzeResponse], error) {
	procedure := req.Spec().Procedure
	records, err := toRecords(req.Msg.Expenses)
	if err != nil {
		return nil, s.fail(procedure, err)
	}
	c, err := s.compute(req.Msg.Members, records, nil)
	if err != nil {
		return nil, s.fail(procedure, err)
	}

	resp := &api.AnalyzeResponse{
		MemberBalances: toAPIBalances(c.balances),
		Settlements:    toAPISettlements(c.settlements),
		TotalAmount:    c.total.Major(),
		Summary:        c.summary,
	}

	names := make([]string, len(c.balances))
	for i, b := range c.balances {
		names[i] = b.Name
	}
	match, err := owner.DetectWithIdentity(req.Msg.SelfName, req.Msg.Description, names)
	switch {
	case errors.Is(err, owner.ErrAmbiguousOwner):
		s.opts.logger.DebugContext(ctx, "Owner not identified", "participants", len(names))
		return connect.NewResponse(resp), nil
	case err != nil:
		return nil, s.fail(procedure, err)
	}
	resp.Owner = &api.OwnerMatch{Name: match.Name, Method: string(match.Method)}

	date := s.opts.now().In(s.opts.location)
	if req.Msg.Date != "" {
		if date, err = parseDate(req.Msg.Date, s.opts.location); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	for _, b := range c.balances {
		if b.Name == match.Name {
			resp.ShareDrafts = toAPIDrafts(owner.ProposeShare(b, owner.ShareOptions{
				Label:             req.Msg.Label,
				Date:              date,
				IncludeReceivable: req.Msg.IncludeReceivable,
			}))
			break
		}
	}

	return connect.NewResponse(resp), nil
}

// Verify recomputes the given expenses and reports where the supplied
// balances and settlements disagree.
func (s *SplitService) Verify(ctx context.Context, req *connect.Request[api.VerifyRequest]) (*connect.Response[api.VerifyResponse], error) {
	procedure := req.Spec().Procedure
	records, err := toRecords(req.Msg.Expenses)
	if err != nil {
		return nil, s.fail(procedure, err)
	}

	balances, err := fromAPIBalances(req.Msg.MemberBalances)
	if err != nil {
		return nil, s.fail(procedure, err)
	}
	settlements, err := fromAPISettlements(req.Msg.Settlements)
	if err != nil {
		return nil, s.fail(procedure, err)
	}

	mismatches, err := calculator.Verify(req.Msg.Members, records, balances, settlements)
	if err != nil {
		return nil, s.fail(procedure, err)
	}

	resp := &api.VerifyResponse{Consistent: len(mismatches) == 0}
	for _, m := range mismatches {
		resp.Mismatches = append(resp.Mismatches, api.Mismatch{Field: m.Field, Want: m.Want, Got: m.Got})
	}
	if !resp.Consistent {
		s.opts.logger.WarnContext(ctx, "Split results disagree", "mismatches", len(mismatches))
	}
	return connect.NewResponse(resp), nil
}

// CreateGroup validates and stores a split session.
func (s *SplitService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	procedure := req.Spec().Procedure
	records, err := toRecords(req.Msg.Expenses)
	if err != nil {
		return nil, s.fail(procedure, err)
	}
	c, err := s.compute(req.Msg.Members, records, nil)
	if err != nil {
		return nil, s.fail(procedure, err)
	}

	// Persist the full roster so payers and splitters missing from the
	// member list still show up in listings.
	members := make([]string, len(c.balances))
	for i, b := range c.balances {
		members[i] = b.Name
	}

	group := &models.Group{
		Name:        strings.TrimSpace(req.Msg.Name),
		Description: req.Msg.Description,
		Members:     members,
		Expenses:    records,
		CreatedBy:   middleware.GetUserID(ctx),
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, s.fail(procedure, err)
	}
	s.opts.logger.InfoContext(ctx, "Group created", "group_id", group.ID, "members", len(members), "expenses", len(records))

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group, c, nil)}), nil
}

// loadGroup fetches a group the caller owns. Groups of other users are
// reported as not found.
func (s *SplitService) loadGroup(ctx context.Context, groupID string) (*models.Group, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group_id is required"))
	}
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.CreatedBy != middleware.GetUserID(ctx) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return group, nil
}

// groupView recomputes a stored group with its recorded payments.
func (s *SplitService) groupView(ctx context.Context, group *models.Group) (*api.Group, error) {
	stored, err := s.store.ListPaymentsByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	payments := make([]models.Payment, len(stored))
	for i, p := range stored {
		payments[i] = *p
	}

	c, err := s.compute(group.Members, group.Expenses, payments)
	if err != nil {
		return nil, err
	}
	return toAPIGroup(group, c, stored), nil
}

// GetGroup returns a stored group with balances and settlements that take
// recorded payments into account.
func (s *SplitService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	procedure := req.Spec().Procedure
	group, err := s.loadGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, s.fail(procedure, err)
	}
	view, err := s.groupView(ctx, group)
	if err != nil {
		return nil, s.fail(procedure, err)
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: view}), nil
}

// ListGroups returns the caller's groups, newest first.
func (s *SplitService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	groups, err := s.store.ListGroups(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, s.fail(req.Spec().Procedure, err)
	}

	resp := &api.ListGroupsResponse{Groups: make([]api.GroupSummary, len(groups))}
	for i, g := range groups {
		resp.Groups[i] = api.GroupSummary{
			ID:           g.ID,
			Name:         g.Name,
			MemberCount:  g.MemberCount,
			ExpenseCount: g.ExpenseCount,
			CreatedAt:    g.CreatedAt,
		}
	}
	return connect.NewResponse(resp), nil
}

// DeleteGroup removes a group and its payments.
func (s *SplitService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	procedure := req.Spec().Procedure
	group, err := s.loadGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, s.fail(procedure, err)
	}
	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		return nil, s.fail(procedure, err)
	}
	s.opts.logger.InfoContext(ctx, "Group deleted", "group_id", group.ID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// RecordPayment stores a settlement that was paid and returns the group
// recomputed with it.
func (s *SplitService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	procedure := req.Spec().Procedure
	group, err := s.loadGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, s.fail(procedure, err)
	}

	l, err := calculator.BuildLedger(group.Members, group.Expenses)
	if err != nil {
		return nil, s.fail(procedure, err)
	}
	from, okFrom := l.Canonical(req.Msg.FromMember)
	to, okTo := l.Canonical(req.Msg.ToMember)
	if !okFrom || !okTo {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("payment must be between members of the group, got %q and %q", req.Msg.FromMember, req.Msg.ToMember))
	}

	amount, err := wireAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, s.fail(procedure, &calculator.ValidationError{Record: -1, Reason: err.Error()})
	}
	payment := &models.Payment{
		GroupID:   group.ID,
		From:      from,
		To:        to,
		Amount:    amount,
		CreatedBy: middleware.GetUserID(ctx),
		Note:      strings.TrimSpace(req.Msg.Note),
	}
	if err := l.AddTransfer(payment.From, payment.To, payment.Amount); err != nil {
		return nil, s.fail(procedure, err)
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, s.fail(procedure, err)
	}
	s.opts.logger.InfoContext(ctx, "Payment recorded",
		"group_id", group.ID, "payment_id", payment.ID, "from", from, "to", to, "amount", payment.Amount.String())

	view, err := s.groupView(ctx, group)
	if err != nil {
		return nil, s.fail(procedure, err)
	}
	p := toAPIPayment(payment)
	return connect.NewResponse(&api.RecordPaymentResponse{Payment: &p, Group: view}), nil
}

// DeletePayment removes a payment recorded against one of the caller's
// groups.
func (s *SplitService) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	procedure := req.Spec().Procedure
	group, err := s.loadGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, s.fail(procedure, err)
	}

	payments, err := s.store.ListPaymentsByGroup(ctx, group.ID)
	if err != nil {
		return nil, s.fail(procedure, err)
	}
	found := slices.ContainsFunc(payments, func(p *models.Payment) bool { return p.ID == req.Msg.PaymentID })
	if !found {
		return nil, s.fail(procedure, fmt.Errorf("payment %s: %w", req.Msg.PaymentID, storage.ErrNotFound))
	}

	if err := s.store.DeletePayment(ctx, req.Msg.PaymentID); err != nil {
		return nil, s.fail(procedure, err)
	}
	s.opts.logger.InfoContext(ctx, "Payment deleted", "group_id", group.ID, "payment_id", req.Msg.PaymentID)
	return connect.NewResponse(&api.DeletePaymentResponse{}), nil
}

func toAPIGroup(group *models.Group, c *computed, payments []*models.Payment) *api.Group {
	g := &api.Group{
		ID:             group.ID,
		Name:           group.Name,
		Description:    group.Description,
		Members:        group.Members,
		Expenses:       toAPIExpenses(group.Expenses),
		CreatedAt:      group.CreatedAt,
		MemberBalances: toAPIBalances(c.balances),
		Settlements:    toAPISettlements(c.settlements),
		TotalAmount:    c.total.Major(),
		Summary:        c.summary,
	}
	for _, p := range payments {
		g.Payments = append(g.Payments, toAPIPayment(p))
	}
	return g
}
