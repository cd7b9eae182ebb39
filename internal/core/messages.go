package core

// Fixed user-facing messages carried in ReviewResponse.Review.
const (
	MsgEmptyCode       = "Please provide some code to review."
	MsgBodyTooLarge    = "The submitted code is too large to review."
	MsgNoReview        = "The model did not return a review. Please try again with a different code snippet."
	MsgUpstreamFailure = "Failed to get a review from the model. Please try again later."
	MsgServiceRunning  = "Code Review API is running..."
)
