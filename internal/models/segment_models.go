package models

// SegmentRequest carries pre-normalized numeric feature vectors, one row per
// customer.
type SegmentRequest struct {
	Features [][]float64 `json:"features"`
}

type ClusterPrediction struct {
	ClosestCluster    float64 `json:"closest_cluster"`
	DistanceToCluster float64 `json:"distance_to_cluster"`
}

type SegmentResponse struct {
	Predictions       []ClusterPrediction `json:"predictions"`
	Endpoint          string              `json:"endpoint"`
	Model             string              `json:"model"`
	FeaturesProcessed int                 `json:"features_processed"`
}
