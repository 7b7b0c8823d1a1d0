package output

import (
	"fmt"

	"policy-lookup/core/lookup"
	"policy-lookup/core/types"
)

// Miss messages shown to the end user, one per reason
const (
	MessageIncomplete = "결합 유형과 인터넷 상품을 먼저 선택해 주세요."
	MessageNotFound   = "해당 조건의 정책을 찾지 못했습니다. (엑셀에 해당 조합 행이 없는 경우입니다.)"
	MessageAmbiguous  = "해당 조건에 정책 행이 여러 개 있습니다. 데이터를 확인해 주세요."
)

// MissMessage returns the user-facing text for a miss reason
func MissMessage(reason lookup.Reason) string {
	switch reason {
	case lookup.ReasonIncomplete:
		return MessageIncomplete
	case lookup.ReasonAmbiguous:
		return MessageAmbiguous
	default:
		return MessageNotFound
	}
}

// Summary is the one-line note under the breakdown: the selected items and
// the external code on a hit, the miss message otherwise.
func Summary(sel types.Selection, outcome lookup.Outcome) string {
	rec, ok := outcome.Record()
	if !ok {
		return MissMessage(outcome.Reason())
	}

	tv := "TV: 미선택"
	if sel.Secondary != "" {
		tv = "TV: " + sel.Secondary
	}
	oneStop := "원스톱: 미선택"
	if sel.OneStop {
		oneStop = "원스톱: 선택"
	}
	extra := "기가지니3: 미선택"
	if sel.ExtraDevice {
		extra = "기가지니3: 선택"
	}
	code := "KOS: -"
	if rec.ExternalCode != nil {
		code = "KOS: " + *rec.ExternalCode
	}
	return fmt.Sprintf("%s / 인터넷: %s / %s / %s / %s / %s",
		sel.Category, sel.Internet, tv, oneStop, extra, code)
}
