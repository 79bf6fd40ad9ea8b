package orders

const (
	TopicOrderPlaced      = "order.placed"
	TopicProductPublished = "product.published"
)

// Partition key = order_id so every event for one order keeps its ordering.
func PartitionKey(id string) []byte { return []byte(id) }
