package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput marks a query whose required input is blank.
var ErrEmptyInput = errors.New("empty input")

// QueryKind selects the prompt template and output schema of an analysis.
type QueryKind int

const (
	KeywordQueryKind QueryKind = iota + 1
	ShopQueryKind
	ProductQueryKind
	RankQueryKind
)

// QueryKinds lists every supported kind in declaration order.
var QueryKinds = []QueryKind{KeywordQueryKind, ShopQueryKind, ProductQueryKind, RankQueryKind}

func (k QueryKind) String() string {
	switch k {
	case KeywordQueryKind:
		return "keyword"
	case ShopQueryKind:
		return "shop"
	case ProductQueryKind:
		return "product"
	case RankQueryKind:
		return "rank"
	default:
		return fmt.Sprintf("QueryKind(%d)", int(k))
	}
}

// ParseQueryKind accepts the String form of a kind, case-insensitively.
func ParseQueryKind(s string) (QueryKind, error) {
	for _, k := range QueryKinds {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown query kind %q", s)
}

// Query is the raw input of one analysis request. Only the fields used by
// Kind are meaningful.
type Query struct {
	Kind     QueryKind `json:"kind"`
	Keyword  string    `json:"keyword,omitempty"`
	ShopName string    `json:"shop_name,omitempty"`
	Product  string    `json:"product,omitempty"`
}

func KeywordQuery(keyword string) Query {
	return Query{Kind: KeywordQueryKind, Keyword: keyword}
}

func ShopQuery(shopName string) Query {
	return Query{Kind: ShopQueryKind, ShopName: shopName}
}

// ProductQuery takes a title, description or URL-like string. It is treated
// as opaque text and never fetched.
func ProductQuery(description string) Query {
	return Query{Kind: ProductQueryKind, Product: description}
}

func RankQuery(keyword, productDescription string) Query {
	return Query{Kind: RankQueryKind, Keyword: keyword, Product: productDescription}
}

// Validate reports blank required inputs. It wraps ErrEmptyInput.
func (q Query) Validate() error {
	blank := func(s string) bool { return strings.TrimSpace(s) == "" }
	switch q.Kind {
	case KeywordQueryKind:
		if blank(q.Keyword) {
			return fmt.Errorf("keyword: %w", ErrEmptyInput)
		}
	case ShopQueryKind:
		if blank(q.ShopName) {
			return fmt.Errorf("shop name: %w", ErrEmptyInput)
		}
	case ProductQueryKind:
		if blank(q.Product) {
			return fmt.Errorf("product description: %w", ErrEmptyInput)
		}
	case RankQueryKind:
		if blank(q.Keyword) {
			return fmt.Errorf("keyword: %w", ErrEmptyInput)
		}
		if blank(q.Product) {
			return fmt.Errorf("product description: %w", ErrEmptyInput)
		}
	default:
		return fmt.Errorf("unsupported query kind %s", q.Kind)
	}
	return nil
}
