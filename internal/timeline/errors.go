package timeline

import "fmt"

func itemPrefix(item int) string {
	if item > 0 {
		return fmt.Sprintf("item %02d: ", item)
	}
	return ""
}

// InvalidDurationError reports a non-positive (or non-finite) item duration.
type InvalidDurationError struct {
	Item     int
	Duration float64
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("%sinvalid duration %.3fs: must be > 0", itemPrefix(e.Item), e.Duration)
}

// InvalidSegmentCountError reports an item that cannot be split into segments.
type InvalidSegmentCountError struct {
	Item  int
	Count int
}

func (e *InvalidSegmentCountError) Error() string {
	return fmt.Sprintf("%sinvalid segment count %d: must be >= 1", itemPrefix(e.Item), e.Count)
}

// AssetMissingError reports an image that could not be opened or decoded.
// Item and Segment are 1-based.
type AssetMissingError struct {
	Item    int
	Segment int
	Path    string
	Err     error
}

func (e *AssetMissingError) Error() string {
	return fmt.Sprintf("item %02d segment %02d: image asset %s unavailable: %v", e.Item, e.Segment, e.Path, e.Err)
}

func (e *AssetMissingError) Unwrap() error { return e.Err }

// EmptyTimelineError is returned when there is nothing to concatenate.
type EmptyTimelineError struct{}

func (e *EmptyTimelineError) Error() string {
	return "timeline is empty: no item units to concatenate"
}
