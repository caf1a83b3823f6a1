package dto

// MonthQuery selects a calendar month (YYYY-MM). Empty means the current month.
type MonthQuery struct {
	Month string `form:"month" binding:"omitempty,month"`
}

// ProjectionQuery selects the projection window. Empty From means today.
type ProjectionQuery struct {
	From string `form:"from" binding:"omitempty,isodate"`
	Days int    `form:"days" binding:"omitempty,min=1,max=366"`
}

// DateRangeQuery is an inclusive range of calendar days.
type DateRangeQuery struct {
	From string `form:"from" binding:"required,isodate"`
	To   string `form:"to" binding:"required,isodate"`
}

// UploadResponse returns the stored location of an uploaded file.
type UploadResponse struct {
	URL string `json:"url"`
}
