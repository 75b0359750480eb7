package agent

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	fallbackConfidenceHit  = 0.6
	fallbackConfidenceMiss = 0.3

	fallbackNoteHit     = "Parsed using pattern matching. Please verify the items."
	fallbackNoteMiss    = "Could not automatically parse products. Please specify product names and quantities clearly."
	defaultQuantityNote = "Quantity not specified, defaulting to 1"

	// fallbackDeliveryDays is applied whenever any date cue is present.
	fallbackDeliveryDays = 7
)

//go:embed keywords.yaml
var keywordsYAML []byte

var defaultKeywordRules = mustLoadKeywordRules(keywordsYAML)

var quantityPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:x\s*)?([a-z\s]+)`)

var dateCuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:by|before|on|deliver(?:y)?(?:\s+by)?)\s+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	regexp.MustCompile(`(?i)(?:next|this)\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)`),
	regexp.MustCompile(`(?i)(?:next|this)\s+week`),
}

type keywordRule struct {
	SKU      string   `yaml:"sku"`
	Keywords []string `yaml:"keywords"`
}

func loadKeywordRules(data []byte) ([]keywordRule, error) {
	var rules []keywordRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("decode keyword rules: %w", err)
	}
	for i, rule := range rules {
		if strings.TrimSpace(rule.SKU) == "" || len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("keyword rule %d: sku and keywords are required", i)
		}
		for j, kw := range rule.Keywords {
			rules[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	return rules, nil
}

func mustLoadKeywordRules(data []byte) []keywordRule {
	rules, err := loadKeywordRules(data)
	if err != nil {
		panic(err)
	}
	return rules
}

func (r keywordRule) matches(lowerText string) bool {
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}

// fallbackParser is the deterministic keyword and pattern parser.
type fallbackParser struct {
	rules []keywordRule
	opts  options
}

// firstRule returns the first rule matching lowerText whose SKU is in the catalog.
func (f fallbackParser) firstRule(lowerText string, bySKU map[string]Product) (Product, bool) {
	for _, rule := range f.rules {
		if !rule.matches(lowerText) {
			continue
		}
		if product, ok := bySKU[rule.SKU]; ok {
			return product, true
		}
	}
	return Product{}, false
}

func (f fallbackParser) parse(rawText string, products []Product) ParsedInquiry {
	bySKU := make(map[string]Product, len(products))
	for _, p := range products {
		bySKU[p.SKU] = p
	}

	lower := strings.ToLower(rawText)
	items := make([]ParsedInquiryItem, 0)
	seen := make(map[string]bool)

	for _, match := range quantityPattern.FindAllStringSubmatch(rawText, -1) {
		quantity, err := strconv.Atoi(match[1])
		if err != nil || quantity <= 0 || quantity > maxItemQuantity {
			continue
		}

		own := strings.ToLower(strings.TrimSpace(match[2]))
		product, ok := f.firstRule(own, bySKU)
		if !ok {
			product, ok = f.firstRule(lower, bySKU)
		}
		if !ok || seen[product.SKU] {
			continue
		}
		seen[product.SKU] = true
		items = append(items, itemFromProduct(product, quantity, nil))
	}

	if len(items) == 0 {
		for _, rule := range f.rules {
			if !rule.matches(lower) {
				continue
			}
			product, ok := bySKU[rule.SKU]
			if !ok || seen[product.SKU] {
				continue
			}
			seen[product.SKU] = true
			items = append(items, itemFromProduct(product, 1, strPtr(defaultQuantityNote)))
		}
	}

	parsed := ParsedInquiry{Items: items}
	if len(items) > 0 {
		parsed.Confidence = fallbackConfidenceHit
		parsed.GeneralNotes = strPtr(fallbackNoteHit)
	} else {
		parsed.Confidence = fallbackConfidenceMiss
		parsed.GeneralNotes = strPtr(fallbackNoteMiss)
	}

	if hasDateCue(rawText) {
		parsed.RequestedDeliveryDate = strPtr(f.opts.today(fallbackDeliveryDays))
	}
	return parsed
}

func itemFromProduct(p Product, quantity int, notes *string) ParsedInquiryItem {
	item := ParsedInquiryItem{
		ProductName: p.Name,
		ProductSKU:  strPtr(p.SKU),
		Quantity:    quantity,
		Notes:       notes,
	}
	if p.Unit != "" {
		item.Unit = strPtr(p.Unit)
	}
	return item
}

func hasDateCue(rawText string) bool {
	for _, pattern := range dateCuePatterns {
		if pattern.MatchString(rawText) {
			return true
		}
	}
	return false
}
