// Package apiconnect holds the Connect handlers and clients of the
// fairshare.v1 services.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairshare/pkg/api"
)

const (
	// SplitServiceName is the fully-qualified name of the SplitService service.
	SplitServiceName = "fairshare.v1.SplitService"
	// AnalyticsServiceName is the fully-qualified name of the AnalyticsService service.
	AnalyticsServiceName = "fairshare.v1.AnalyticsService"
)

// Procedure paths, as "/<service>/<method>".
const (
	SplitServiceAnalyzeProcedure       = "/fairshare.v1.SplitService/Analyze"
	SplitServiceVerifyProcedure        = "/fairshare.v1.SplitService/Verify"
	SplitServiceCreateGroupProcedure   = "/fairshare.v1.SplitService/CreateGroup"
	SplitServiceGetGroupProcedure      = "/fairshare.v1.SplitService/GetGroup"
	SplitServiceListGroupsProcedure    = "/fairshare.v1.SplitService/ListGroups"
	SplitServiceDeleteGroupProcedure   = "/fairshare.v1.SplitService/DeleteGroup"
	SplitServiceRecordPaymentProcedure = "/fairshare.v1.SplitService/RecordPayment"
	SplitServiceDeletePaymentProcedure = "/fairshare.v1.SplitService/DeletePayment"

	AnalyticsServiceSummarizeProcedure = "/fairshare.v1.AnalyticsService/Summarize"
)

// SplitServiceClient is a client for the fairshare.v1.SplitService service.
type SplitServiceClient interface {
	Analyze(context.Context, *connect.Request[api.AnalyzeRequest]) (*connect.Response[api.AnalyzeResponse], error)
	Verify(context.Context, *connect.Request[api.VerifyRequest]) (*connect.Response[api.VerifyResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
}

// NewSplitServiceClient constructs a client for the fairshare.v1.SplitService
// service. The baseURL is the server root, e.g. "http://localhost:8080".
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &splitServiceClient{
		analyze:       connect.NewClient[api.AnalyzeRequest, api.AnalyzeResponse](httpClient, baseURL+SplitServiceAnalyzeProcedure, opts...),
		verify:        connect.NewClient[api.VerifyRequest, api.VerifyResponse](httpClient, baseURL+SplitServiceVerifyProcedure, opts...),
		createGroup:   connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+SplitServiceCreateGroupProcedure, opts...),
		getGroup:      connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+SplitServiceGetGroupProcedure, opts...),
		listGroups:    connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+SplitServiceListGroupsProcedure, opts...),
		deleteGroup:   connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+SplitServiceDeleteGroupProcedure, opts...),
		recordPayment: connect.NewClient[api.RecordPaymentRequest, api.RecordPaymentResponse](httpClient, baseURL+SplitServiceRecordPaymentProcedure, opts...),
		deletePayment: connect.NewClient[api.DeletePaymentRequest, api.DeletePaymentResponse](httpClient, baseURL+SplitServiceDeletePaymentProcedure, opts...),
	}
}

type splitServiceClient struct {
	analyze       *connect.Client[api.AnalyzeRequest, api.AnalyzeResponse]
	verify        *connect.Client[api.VerifyRequest, api.VerifyResponse]
	createGroup   *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup      *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups    *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	deleteGroup   *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	recordPayment *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
	deletePayment *connect.Client[api.DeletePaymentRequest, api.DeletePaymentResponse]
}

func (c *splitServiceClient) Analyze(ctx context.Context, req *connect.Request[api.AnalyzeRequest]) (*connect.Response[api.AnalyzeResponse], error) {
	return c.analyze.CallUnary(ctx, req)
}

func (c *splitServiceClient) Verify(ctx context.Context, req *connect.Request[api.VerifyRequest]) (*connect.Response[api.VerifyResponse], error) {
	return c.verify.CallUnary(ctx, req)
}

func (c *splitServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *splitServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *splitServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *splitServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *splitServiceClient) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	return c.deletePayment.CallUnary(ctx, req)
}

// SplitServiceHandler is an implementation of the fairshare.v1.SplitService service.
type SplitServiceHandler interface {
	Analyze(context.Context, *connect.Request[api.AnalyzeRequest]) (*connect.Response[api.AnalyzeResponse], error)
	Verify(context.Context, *connect.Request[api.VerifyRequest]) (*connect.Response[api.VerifyResponse], error)
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	analyze := connect.NewUnaryHandler(SplitServiceAnalyzeProcedure, svc.Analyze, opts...)
	verify := connect.NewUnaryHandler(SplitServiceVerifyProcedure, svc.Verify, opts...)
	createGroup := connect.NewUnaryHandler(SplitServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	getGroup := connect.NewUnaryHandler(SplitServiceGetGroupProcedure, svc.GetGroup, opts...)
	listGroups := connect.NewUnaryHandler(SplitServiceListGroupsProcedure, svc.ListGroups, opts...)
	deleteGroup := connect.NewUnaryHandler(SplitServiceDeleteGroupProcedure, svc.DeleteGroup, opts...)
	recordPayment := connect.NewUnaryHandler(SplitServiceRecordPaymentProcedure, svc.RecordPayment, opts...)
	deletePayment := connect.NewUnaryHandler(SplitServiceDeletePaymentProcedure, svc.DeletePayment, opts...)

	return "/" + SplitServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SplitServiceAnalyzeProcedure:
			analyze.ServeHTTP(w, r)
		case SplitServiceVerifyProcedure:
			verify.ServeHTTP(w, r)
		case SplitServiceCreateGroupProcedure:
			createGroup.ServeHTTP(w, r)
		case SplitServiceGetGroupProcedure:
			getGroup.ServeHTTP(w, r)
		case SplitServiceListGroupsProcedure:
			listGroups.ServeHTTP(w, r)
		case SplitServiceDeleteGroupProcedure:
			deleteGroup.ServeHTTP(w, r)
		case SplitServiceRecordPaymentProcedure:
			recordPayment.ServeHTTP(w, r)
		case SplitServiceDeletePaymentProcedure:
			deletePayment.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedSplitServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSplitServiceHandler struct{}

func (UnimplementedSplitServiceHandler) Analyze(context.Context, *connect.Request[api.AnalyzeRequest]) (*connect.Response[api.AnalyzeResponse], error) {
	return nil, unimplemented(SplitServiceAnalyzeProcedure)
}

func (UnimplementedSplitServiceHandler) Verify(context.Context, *connect.Request[api.VerifyRequest]) (*connect.Response[api.VerifyResponse], error) {
	return nil, unimplemented(SplitServiceVerifyProcedure)
}

func (UnimplementedSplitServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, unimplemented(SplitServiceCreateGroupProcedure)
}

func (UnimplementedSplitServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, unimplemented(SplitServiceGetGroupProcedure)
}

func (UnimplementedSplitServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, unimplemented(SplitServiceListGroupsProcedure)
}

func (UnimplementedSplitServiceHandler) DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return nil, unimplemented(SplitServiceDeleteGroupProcedure)
}

func (UnimplementedSplitServiceHandler) RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return nil, unimplemented(SplitServiceRecordPaymentProcedure)
}

func (UnimplementedSplitServiceHandler) DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	return nil, unimplemented(SplitServiceDeletePaymentProcedure)
}

// AnalyticsServiceClient is a client for the fairshare.v1.AnalyticsService service.
type AnalyticsServiceClient interface {
	Summarize(context.Context, *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error)
}

// NewAnalyticsServiceClient constructs a client for the
// fairshare.v1.AnalyticsService service.
func NewAnalyticsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AnalyticsServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &analyticsServiceClient{
		summarize: connect.NewClient[api.SummarizeRequest, api.SummarizeResponse](httpClient, baseURL+AnalyticsServiceSummarizeProcedure, opts...),
	}
}

type analyticsServiceClient struct {
	summarize *connect.Client[api.SummarizeRequest, api.SummarizeResponse]
}

func (c *analyticsServiceClient) Summarize(ctx context.Context, req *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error) {
	return c.summarize.CallUnary(ctx, req)
}

// AnalyticsServiceHandler is an implementation of the
// fairshare.v1.AnalyticsService service.
type AnalyticsServiceHandler interface {
	Summarize(context.Context, *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error)
}

// NewAnalyticsServiceHandler builds an HTTP handler from the service
// implementation.
func NewAnalyticsServiceHandler(svc AnalyticsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	summarize := connect.NewUnaryHandler(AnalyticsServiceSummarizeProcedure, svc.Summarize, opts...)

	return "/" + AnalyticsServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AnalyticsServiceSummarizeProcedure:
			summarize.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedAnalyticsServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAnalyticsServiceHandler struct{}

func (UnimplementedAnalyticsServiceHandler) Summarize(context.Context, *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error) {
	return nil, unimplemented(AnalyticsServiceSummarizeProcedure)
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}
