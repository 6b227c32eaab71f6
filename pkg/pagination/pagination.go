package pagination

// Params is the normalized result of Paginate.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Meta carries pagination metadata alongside a page of results.
type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	LastPage int   `json:"last_page"`
}

// Envelope is the uniform paginated response wrapper.
type Envelope[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// Paginate normalizes a (page, limit) pair into offset/limit values.
// page is floored at 1; limit falls back to defaultLimit when unset (<= 0)
// and is clamped to [1, maxLimit].
func Paginate(page, limit, defaultLimit, maxLimit int) Params {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// NewEnvelope assembles a paginated envelope from a page of rows and the
// total count over the unpaginated set. LastPage is never below 1, even for
// an empty result.
func NewEnvelope[T any](data []T, page, limit int, total int64) Envelope[T] {
	if data == nil {
		data = []T{}
	}
	lastPage := int((total + int64(limit) - 1) / int64(limit))
	if lastPage < 1 {
		lastPage = 1
	}
	return Envelope[T]{
		Data: data,
		Meta: Meta{
			Total:    total,
			Page:     page,
			Limit:    limit,
			LastPage: lastPage,
		},
	}
}
