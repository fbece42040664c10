/* models.go
 * This file contain the structs returned to api consumers that are not resource records
 * Authors: Zachary Bower
 */

package api

// BulkDeleteResult reports the outcome of a bulk delete
type BulkDeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Message is the body of confirmations and errors
type Message struct {
	Message string `json:"message"`
}
