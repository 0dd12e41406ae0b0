package operations

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/oeb25/abeye/internal/httputil"
	"github.com/oeb25/abeye/internal/pathutil"
	"github.com/oeb25/abeye/oaserrors"
	"github.com/oeb25/abeye/parser"
	"github.com/oeb25/abeye/resolver"
	"github.com/oeb25/abeye/typesys"
)

// Param is a named path or query parameter.
type Param struct {
	Name string
	Type typesys.Type
}

// RequestKind describes a request body. Only JSON bodies exist.
type RequestKind struct {
	Type typesys.Type
}

// ResponseFormat selects how a response body is read.
type ResponseFormat int

const (
	// ResponsePlain is a text/plain body read as a string.
	ResponsePlain ResponseFormat = iota
	// ResponseJSON is an application/json body.
	ResponseJSON
	// ResponseEventStream is a text/event-stream of JSON events.
	ResponseEventStream
)

func (f ResponseFormat) String() string {
	switch f {
	case ResponsePlain:
		return "plain"
	case ResponseJSON:
		return "json"
	case ResponseEventStream:
		return "event-stream"
	}
	return fmt.Sprintf("ResponseFormat(%d)", int(f))
}

// ResponseKind describes the response an operation yields. Type is unset
// for ResponsePlain.
type ResponseKind struct {
	Format ResponseFormat
	Type   typesys.Type
}

// Operation is the typed signature of one path/method pair.
type Operation struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
	Deprecated  bool

	// PathParams and QueryParams are ordered by name.
	PathParams  []Param
	QueryParams []Param

	Body     *RequestKind
	Response *ResponseKind
	// Status is the response key Response was taken from.
	Status string
}

// Extractor builds Operations from the paths of a document.
type Extractor struct {
	r      *resolver.Resolver
	logger parser.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger. Each operation's signature is logged at debug
// level.
func WithLogger(l parser.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// New creates an Extractor resolving schemas through r.
func New(r *resolver.Resolver, opts ...Option) *Extractor {
	e := &Extractor{r: r}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = parser.OrNop(e.logger)
	return e
}

// ExtractAll returns every operation of the document: paths in document
// order, and within a path the methods in [httputil.Methods] order.
func (e *Extractor) ExtractAll(ctx context.Context) ([]*Operation, error) {
	doc := e.r.Document()
	var out []*Operation
	for path, item := range doc.Paths.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ops, err := e.ExtractPath(path, item)
		if err != nil {
			return nil, err
		}
		out = append(out, ops...)
	}
	return out, nil
}

// ExtractPath returns the operations defined on one path item.
func (e *Extractor) ExtractPath(path string, item *parser.PathItem) ([]*Operation, error) {
	if item == nil {
		return nil, nil
	}
	if item.Ref != "" {
		return nil, &oaserrors.OperationError{Path: path, Cause: oaserrors.Unsupported("path item $ref", "%s", item.Ref)}
	}
	if len(item.Parameters) > 0 {
		return nil, &oaserrors.OperationError{Path: path, Cause: oaserrors.Unsupported("path-level parameters", "")}
	}
	var out []*Operation
	for _, method := range httputil.Methods {
		op := operationFor(item, method)
		if op == nil {
			continue
		}
		extracted, err := e.Extract(path, method, op)
		if err != nil {
			return nil, err
		}
		out = append(out, extracted)
	}
	return out, nil
}

func operationFor(item *parser.PathItem, method string) *parser.Operation {
	switch method {
	case httputil.MethodDelete:
		return item.Delete
	case httputil.MethodGet:
		return item.Get
	case httputil.MethodPut:
		return item.Put
	case httputil.MethodPost:
		return item.Post
	case httputil.MethodHead:
		return item.Head
	case httputil.MethodTrace:
		return item.Trace
	case httputil.MethodPatch:
		return item.Patch
	}
	return nil
}

// Extract builds the signature of a single operation.
func (e *Extractor) Extract(path, method string, op *parser.Operation) (*Operation, error) {
	wrap := func(err error) error {
		return &oaserrors.OperationError{Path: path, Method: method, Cause: err}
	}

	out := &Operation{
		Path:        path,
		Method:      method,
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Deprecated:  op.Deprecated,
	}

	pathParams := make(map[string]typesys.Type)
	queryParams := make(map[string]typesys.Type)
	for _, param := range op.Parameters {
		t, err := e.parameter(param)
		if err != nil {
			return nil, wrap(err)
		}
		if param.In == parser.InPath {
			pathParams[param.Name] = t
		} else {
			queryParams[param.Name] = t
		}
	}
	out.PathParams = sortedParams(pathParams)
	out.QueryParams = sortedParams(queryParams)
	if err := checkPathParams(path, out.PathParams); err != nil {
		return nil, wrap(err)
	}

	if op.RequestBody != nil {
		body, err := e.requestBody(op.RequestBody)
		if err != nil {
			return nil, wrap(err)
		}
		out.Body = body
	}

	if err := checkStatusCodes(&op.Responses); err != nil {
		return nil, wrap(err)
	}
	if status, resp, ok := SelectResponse(&op.Responses); ok {
		kind, err := e.response(resp)
		if err != nil {
			return nil, wrap(fmt.Errorf("response %s: %w", status, err))
		}
		out.Response = kind
		out.Status = status
	}

	e.log(out)
	return out, nil
}

func (e *Extractor) log(op *Operation) {
	attrs := []any{"method", op.Method, "path", op.Path}
	for _, p := range op.PathParams {
		attrs = append(attrs, "param."+p.Name, p.Type.String())
	}
	for _, p := range op.QueryParams {
		attrs = append(attrs, "query."+p.Name, p.Type.String())
	}
	if op.Body != nil {
		attrs = append(attrs, "body", op.Body.Type.String())
	}
	if op.Response != nil {
		attrs = append(attrs, "status", op.Status, "response", op.Response.Format.String())
		if op.Response.Type.IsValid() {
			attrs = append(attrs, "response_type", op.Response.Type.String())
		}
	}
	e.logger.Debug("extracted operation", attrs...)
}

// checkPathParams fails unless the placeholders of the path template and
// the declared path parameters name the same set.
func checkPathParams(path string, declared []Param) error {
	inTemplate := make(map[string]bool)
	for _, name := range pathutil.TemplateParams(path) {
		inTemplate[name] = true
	}
	isDeclared := make(map[string]bool, len(declared))
	for _, p := range declared {
		isDeclared[p.Name] = true
		if !inTemplate[p.Name] {
			return oaserrors.Unsupported("path parameters", "%s is declared but not in the path template", p.Name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(inTemplate)) {
		if !isDeclared[name] {
			return oaserrors.Unsupported("path parameters", "%s is in the path template but not declared", name)
		}
	}
	return nil
}

// checkStatusCodes rejects response keys that are not a status code, a
// status wildcard, or "default".
func checkStatusCodes(responses *parser.Responses) error {
	for _, key := range responses.Keys() {
		if !httputil.ValidateStatusCode(key) {
			return oaserrors.Unsupported("response status", "%q", key)
		}
	}
	return nil
}

func sortedParams(m map[string]typesys.Type) []Param {
	names := slices.Sorted(maps.Keys(m))
	out := make([]Param, len(names))
	for i, name := range names {
		out[i] = Param{Name: name, Type: m[name]}
	}
	return out
}

func (e *Extractor) parameter(param *parser.Parameter) (typesys.Type, error) {
	if param == nil {
		return typesys.Type{}, oaserrors.Unsupported("missing parameter", "")
	}
	if param.Ref != "" {
		return typesys.Type{}, oaserrors.Unsupported("parameter $ref", "%s", param.Ref)
	}
	switch param.In {
	case parser.InQuery, parser.InPath:
	case parser.InHeader, parser.InCookie:
		return typesys.Type{}, oaserrors.Unsupported(param.In+" parameter", "%s", param.Name)
	default:
		return typesys.Type{}, oaserrors.Unsupported("parameter location", "%q for %s", param.In, param.Name)
	}
	if param.Content.Len() > 0 {
		return typesys.Type{}, oaserrors.Unsupported("content parameter", "%s", param.Name)
	}
	if param.Schema == nil {
		return typesys.Type{}, oaserrors.Unsupported("parameter without schema", "%s", param.Name)
	}
	t, err := e.r.Shallow(param.Schema)
	if err != nil {
		return typesys.Type{}, fmt.Errorf("parameter %s: %w", param.Name, err)
	}
	return t, nil
}

// content returns the single media type entry of a content map.
func content(m *parser.OrderedMap[*parser.MediaType]) (string, *parser.MediaType, error) {
	if m.Len() != 1 {
		return "", nil, oaserrors.Unsupported("content types", "%d entries, want exactly 1", m.Len())
	}
	mediaType := m.Keys()[0]
	value, _ := m.Get(mediaType)
	if value == nil || value.Schema == nil {
		return "", nil, oaserrors.Unsupported("content without schema", "%s", mediaType)
	}
	return mediaType, value, nil
}

func (e *Extractor) requestBody(body *parser.RequestBody) (*RequestKind, error) {
	if body.Ref != "" {
		return nil, oaserrors.Unsupported("request body $ref", "%s", body.Ref)
	}
	mediaType, value, err := content(&body.Content)
	if err != nil {
		return nil, fmt.Errorf("request body: %w", err)
	}
	if httputil.MediaTypeBase(mediaType) != httputil.MediaTypeJSON {
		return nil, oaserrors.Unsupported("request media type", "%s", mediaType)
	}
	t, err := e.r.Shallow(value.Schema)
	if err != nil {
		return nil, fmt.Errorf("request body: %w", err)
	}
	return &RequestKind{Type: e.r.Store().Simplify(t)}, nil
}

func (e *Extractor) response(resp *parser.Response) (*ResponseKind, error) {
	if resp == nil {
		return nil, oaserrors.Unsupported("empty response", "")
	}
	if resp.Ref != "" {
		return nil, oaserrors.Unsupported("response $ref", "%s", resp.Ref)
	}
	mediaType, value, err := content(&resp.Content)
	if err != nil {
		return nil, err
	}
	t, err := e.r.Shallow(value.Schema)
	if err != nil {
		return nil, err
	}
	store := e.r.Store()
	t = store.Simplify(t)

	switch httputil.MediaTypeBase(mediaType) {
	case httputil.MediaTypePlain:
		if t != store.String() {
			return nil, &oaserrors.TypeMismatchError{MediaType: mediaType, Expected: "string", Actual: t.String()}
		}
		return &ResponseKind{Format: ResponsePlain}, nil
	case httputil.MediaTypeJSON:
		return &ResponseKind{Format: ResponseJSON, Type: t}, nil
	case httputil.MediaTypeEventStream:
		return &ResponseKind{Format: ResponseEventStream, Type: t}, nil
	default:
		return nil, oaserrors.Unsupported("response media type", "%s", mediaType)
	}
}

// SelectResponse picks the response an operation is typed by: the only
// entry if there is one, else "200", else the lowest other success code,
// else "default", else the first entry in document order.
func SelectResponse(responses *parser.Responses) (string, *parser.Response, bool) {
	keys := responses.Keys()
	if len(keys) == 0 {
		return "", nil, false
	}
	pick := func(key string) (string, *parser.Response, bool) {
		resp, _ := responses.Get(key)
		return key, resp, true
	}
	if len(keys) == 1 {
		return pick(keys[0])
	}
	if _, ok := responses.Get(httputil.StatusOK); ok {
		return pick(httputil.StatusOK)
	}
	best, bestRank := "", 0
	for _, key := range keys {
		if rank, ok := httputil.SuccessRank(key); ok && (best == "" || rank < bestRank) {
			best, bestRank = key, rank
		}
	}
	if best != "" {
		return pick(best)
	}
	if _, ok := responses.Get(httputil.StatusDefault); ok {
		return pick(httputil.StatusDefault)
	}
	return pick(keys[0])
}
