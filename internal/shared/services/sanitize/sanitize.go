// Package sanitize strips markup from operator-authored text before it is
// sent to the payment provider. Form editors paste rich text into plan names
// and descriptions; the provider wants plain text.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type Service interface {
	// PlainText removes all HTML markup and collapses surrounding whitespace.
	PlainText(input string) string
	// PlanDescription sanitizes a plan description and caps it at the
	// provider's length limit.
	PlanDescription(input string) string
}

// DescriptionMaxLen is the provider's plan description limit.
const DescriptionMaxLen = 127

type serviceImpl struct {
	policy *bluemonday.Policy
}

func NewService() Service {
	return &serviceImpl{
		policy: bluemonday.StrictPolicy(),
	}
}

func (s *serviceImpl) PlainText(input string) string {
	return strings.TrimSpace(s.policy.Sanitize(input))
}

func (s *serviceImpl) PlanDescription(input string) string {
	out := s.PlainText(input)
	if len(out) > DescriptionMaxLen {
		out = out[:DescriptionMaxLen]
	}
	return out
}
