package dynamo

// DynamoDB attribute names used in update expressions across repos. Using
// constants prevents silent runtime bugs caused by key typos.
const (
	fieldStatus = "status"
	fieldReaded = "readed"
)
