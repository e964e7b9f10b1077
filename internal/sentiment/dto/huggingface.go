package dto

// HuggingFaceRequest is the body posted to the inference endpoint.
type HuggingFaceRequest struct {
	Inputs string `json:"inputs"`
}

// LabelScore is one entry of the classifier's label distribution.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// HuggingFaceResponse is the classifier output: one distribution per input.
type HuggingFaceResponse [][]LabelScore
