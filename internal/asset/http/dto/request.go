// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/drive-proxy/internal/validation"
)

// GenerateURLRequest contains the file a presigned URL is requested for.
type GenerateURLRequest struct {
	FileID string `json:"fileId"`
}

// Validate checks if the generate URL request is valid.
func (r *GenerateURLRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FileID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
			customValidation.FileID,
		),
	)
}

// AssetQuery contains the query parameters of an asset request.
type AssetQuery struct {
	Payload string `form:"payload" json:"payload"`
}

// Validate checks if the asset query is valid.
func (q *AssetQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.Payload,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
