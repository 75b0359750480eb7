package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"wholesale_portal_backend/platform/logger"
)

// Source tells which path produced a ParsedInquiry.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

const (
	defaultConfidence = 0.5
	parserTemperature = 0.1
)

var (
	errModelDisabled     = errors.New("model not configured")
	errModelCall         = errors.New("model call failed")
	errUnrecognizedReply = errors.New("model reply had no text content")
	errInvalidJSON       = errors.New("model reply was not valid JSON")
	errNoItems           = errors.New("model returned no items")
)

// ParseOutcome is the tagged result of Parser.Parse.
// FallbackReason is set only when Source is SourceFallback.
type ParseOutcome struct {
	Source         Source        `json:"source"`
	Inquiry        ParsedInquiry `json:"inquiry"`
	FallbackReason string        `json:"fallbackReason,omitempty"`
}

// Degraded reports whether the deterministic fallback produced the result.
func (o ParseOutcome) Degraded() bool {
	return o.Source == SourceFallback
}

// Parser converts raw inquiry text into a ParsedInquiry. A nil model makes
// every call take the fallback path.
type Parser struct {
	llm      model.LLM
	catalog  Catalog
	log      *logger.Logger
	fallback fallbackParser
}

// NewParser wires a parser to its model and catalog collaborators.
func NewParser(llm model.LLM, catalog Catalog, log *logger.Logger, opts ...Option) *Parser {
	o := applyOptions(opts)
	return &Parser{
		llm:      llm,
		catalog:  catalog,
		log:      log,
		fallback: fallbackParser{rules: defaultKeywordRules, opts: o},
	}
}

// Parse never fails: model problems degrade to the keyword fallback.
func (p *Parser) Parse(ctx context.Context, rawText string) ParseOutcome {
	products, err := p.catalog.ListActive(ctx)
	if err != nil {
		p.log.CatalogDegraded("list_active", err)
		products = nil
	}

	primary, err := p.parsePrimary(ctx, rawText, products)
	if err == nil && len(primary.Items) > 0 {
		return ParseOutcome{Source: SourcePrimary, Inquiry: primary}
	}

	var carried *ParsedInquiry
	if err == nil {
		err = errNoItems
		carried = &primary
	}

	parsed := p.fallback.parse(rawText, products)
	if carried != nil {
		carryContactFields(&parsed, *carried)
	}
	p.log.ParseFallback(err.Error(), len(parsed.Items))
	return ParseOutcome{Source: SourceFallback, Inquiry: parsed, FallbackReason: err.Error()}
}

func (p *Parser) parsePrimary(ctx context.Context, rawText string, products []Product) (ParsedInquiry, error) {
	if p.llm == nil {
		return ParsedInquiry{}, errModelDisabled
	}

	temperature := float32(parserTemperature)
	req := &model.LLMRequest{
		Contents: []*genai.Content{genai.NewContentFromText(parserUserPrompt(rawText), genai.RoleUser)},
		Config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(parserSystemPrompt(products), "system"),
			Temperature:       &temperature,
		},
	}

	reply := llmReply{kind: replyUnrecognized}
	for resp, err := range p.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return ParsedInquiry{}, fmt.Errorf("%w: %v", errModelCall, err)
		}
		if r := normalizeReply(resp); r.kind == replyText {
			reply = r
			break
		}
	}
	if reply.kind != replyText {
		return ParsedInquiry{}, errUnrecognizedReply
	}

	return decodeParsedInquiry(reply.value)
}

type replyKind int

const (
	replyUnrecognized replyKind = iota
	replyText
)

// llmReply isolates the parser from the shape of model responses.
type llmReply struct {
	kind  replyKind
	value string
}

func normalizeReply(resp *model.LLMResponse) llmReply {
	if resp == nil || resp.Content == nil {
		return llmReply{kind: replyUnrecognized}
	}
	for _, part := range resp.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		if strings.TrimSpace(part.Text) != "" {
			return llmReply{kind: replyText, value: part.Text}
		}
	}
	return llmReply{kind: replyUnrecognized}
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

type modelInquiry struct {
	DealerName            *string         `json:"dealerName"`
	DealerEmail           *string         `json:"dealerEmail"`
	DealerPhone           *string         `json:"dealerPhone"`
	Items                 json.RawMessage `json:"items"`
	RequestedDeliveryDate *string         `json:"requestedDeliveryDate"`
	DeliveryAddress       *string         `json:"deliveryAddress"`
	GeneralNotes          *string         `json:"generalNotes"`
	Confidence            json.RawMessage `json:"confidence"`
}

type modelItem struct {
	ProductName string          `json:"productName"`
	ProductSKU  *string         `json:"productSku"`
	Quantity    json.RawMessage `json:"quantity"`
	Unit        *string         `json:"unit"`
	Notes       *string         `json:"notes"`
}

func decodeParsedInquiry(text string) (ParsedInquiry, error) {
	var raw modelInquiry
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &raw); err != nil {
		return ParsedInquiry{}, fmt.Errorf("%w: %v", errInvalidJSON, err)
	}

	parsed := ParsedInquiry{
		DealerName:            clean(raw.DealerName),
		DealerEmail:           clean(raw.DealerEmail),
		DealerPhone:           clean(raw.DealerPhone),
		Items:                 decodeItems(raw.Items),
		RequestedDeliveryDate: cleanDate(raw.RequestedDeliveryDate),
		DeliveryAddress:       clean(raw.DeliveryAddress),
		GeneralNotes:          clean(raw.GeneralNotes),
		Confidence:            decodeConfidence(raw.Confidence),
	}
	return parsed, nil
}

// maxItemQuantity bounds quantities accepted from either parse path.
const maxItemQuantity = 1_000_000_000

// decodeItems treats a missing or non-array value as no items and drops
// lines without a positive quantity or above maxItemQuantity. Fractional
// quantities round up.
func decodeItems(raw json.RawMessage) []ParsedInquiryItem {
	items := make([]ParsedInquiryItem, 0)
	var lines []modelItem
	if len(raw) == 0 || json.Unmarshal(raw, &lines) != nil {
		return items
	}

	for _, line := range lines {
		quantity, ok := decodeNumber(line.Quantity)
		if !ok || quantity <= 0 || quantity > maxItemQuantity {
			continue
		}
		sku := clean(line.ProductSKU)
		if sku != nil {
			sku = strPtr(strings.ToUpper(*sku))
		}
		name := strings.TrimSpace(line.ProductName)
		if name == "" {
			if sku == nil {
				continue
			}
			name = *sku
		}
		items = append(items, ParsedInquiryItem{
			ProductName: name,
			ProductSKU:  sku,
			Quantity:    int(math.Ceil(quantity)),
			Unit:        clean(line.Unit),
			Notes:       clean(line.Notes),
		})
	}
	return items
}

func decodeConfidence(raw json.RawMessage) float64 {
	value, ok := decodeNumber(raw)
	if !ok {
		return defaultConfidence
	}
	return math.Min(1, math.Max(0, value))
}

// decodeNumber accepts JSON numbers only; strings, nulls and objects fail.
func decodeNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return 0, false
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func clean(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return nil
	}
	return &trimmed
}

func cleanDate(s *string) *string {
	value := clean(s)
	if value == nil {
		return nil
	}
	if _, err := time.Parse(dateLayout, *value); err != nil {
		return nil
	}
	return value
}

// carryContactFields keeps what the model extracted about the sender when
// the item list had to come from the fallback.
func carryContactFields(dst *ParsedInquiry, src ParsedInquiry) {
	dst.DealerName = src.DealerName
	dst.DealerEmail = src.DealerEmail
	dst.DealerPhone = src.DealerPhone
	dst.DeliveryAddress = src.DeliveryAddress
	if dst.RequestedDeliveryDate == nil {
		dst.RequestedDeliveryDate = src.RequestedDeliveryDate
	}
}
