package filters

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	ParamHousingID = "housingId"
	ParamUserID    = "userId"
)

// ReviewFilter narrows reviews by housing and/or author.
type ReviewFilter struct {
	housingID *int64
	userID    *int64
}

func (f ReviewFilter) HousingID() (int64, bool) {
	if f.housingID == nil {
		return 0, false
	}
	return *f.housingID, true
}

func (f ReviewFilter) UserID() (int64, bool) {
	if f.userID == nil {
		return 0, false
	}
	return *f.userID, true
}

type ReviewBuilder struct {
	f ReviewFilter
}

func NewReviewBuilder() ReviewBuilder {
	return ReviewBuilder{}
}

func (b ReviewBuilder) HousingID(id int64) ReviewBuilder {
	b.f.housingID = &id
	return b
}

func (b ReviewBuilder) UserID(id int64) ReviewBuilder {
	b.f.userID = &id
	return b
}

func (b ReviewBuilder) Build() ReviewFilter {
	return b.f
}

// ReviewFromQuery reads housingId and userId, ignoring malformed ids.
func ReviewFromQuery(q url.Values) ReviewFilter {
	b := NewReviewBuilder()
	if id, ok := parseID(q.Get(ParamHousingID)); ok {
		b = b.HousingID(id)
	}
	if id, ok := parseID(q.Get(ParamUserID)); ok {
		b = b.UserID(id)
	}
	return b.Build()
}

func parseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v, err == nil
}
