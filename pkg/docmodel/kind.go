package docmodel

import (
	"errors"
	"fmt"
	"strings"
)

// DocumentKind selects which topics a generated document contains.
type DocumentKind string

const (
	DocComponents   DocumentKind = "components"
	DocArchitecture DocumentKind = "architecture"
	DocDeveloper    DocumentKind = "developer"
	DocTypes        DocumentKind = "types"
	DocAll          DocumentKind = "all"
)

// Topic is one documentation subject area.
type Topic string

const (
	TopicComponents   Topic = "components"
	TopicTypes        Topic = "types"
	TopicArchitecture Topic = "architecture"
	TopicDeveloper    Topic = "developer"
)

// ErrAllNotSupported is returned when a single-topic output is asked for "all".
var ErrAllNotSupported = errors.New("documentation type all is not supported for this output")

// UnknownKindError reports a document kind outside the known set.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown documentation type: %s", e.Kind)
}

// ParseDocumentKind accepts any of the five document kinds.
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch k := DocumentKind(strings.TrimSpace(s)); k {
	case DocComponents, DocArchitecture, DocDeveloper, DocTypes, DocAll:
		return k, nil
	default:
		return "", &UnknownKindError{Kind: s}
	}
}

// ParseSingleKind accepts one of the four single-topic kinds. "all" yields an
// UnknownKindError that also matches ErrAllNotSupported.
func ParseSingleKind(s string) (DocumentKind, error) {
	k, err := ParseDocumentKind(s)
	if err != nil {
		return "", err
	}
	if k == DocAll {
		return "", fmt.Errorf("%w: %w", &UnknownKindError{Kind: s}, ErrAllNotSupported)
	}
	return k, nil
}

// Topics returns the topics of k in fixed order.
func (k DocumentKind) Topics() []Topic {
	switch k {
	case DocComponents:
		return []Topic{TopicComponents}
	case DocTypes:
		return []Topic{TopicTypes}
	case DocArchitecture:
		return []Topic{TopicArchitecture}
	case DocDeveloper:
		return []Topic{TopicDeveloper}
	case DocAll:
		return []Topic{TopicComponents, TopicTypes, TopicArchitecture, TopicDeveloper}
	}
	return nil
}

// Has reports whether k includes topic t.
func (k DocumentKind) Has(t Topic) bool {
	for _, topic := range k.Topics() {
		if topic == t {
			return true
		}
	}
	return false
}
