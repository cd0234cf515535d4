// Package extract flattens nested review events into tabular rows.
package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/reviewkit/klavex/internal/client"
)

// Row is one flattened event: output column name to rendered cell value.
// Fixed columns are always present (empty string when the source field is
// absent); "CQ:" columns exist only on events that carried them.
type Row map[string]string

// cqPrefix marks custom-question properties, which are named dynamically.
const cqPrefix = "CQ:"

// baseColumns is the fixed column set, in output order.
var baseColumns = []string{
	"event_id",
	"event_datetime",
	"profile_email",
	"review_verified",
	"review_email",
	"review_id",
	"review_rating",
	"review_author",
	"review_status",
	"review_has_media",
	"review_content",
	"review_title",
	"review_link",
	"is_store_review",
	"product_id",
	"product_title",
	"product_handle",
	"product_type",
	"product_vendor",
	"product_tags",
	"variant_id",
	"variant_title",
	"variant_sku",
	"structured_product_name",
	"structured_product_url",
	"structured_product_image_url",
}

// reviewFields are the flat review properties copied through verbatim.
var reviewFields = []string{
	"review_verified",
	"review_email",
	"review_id",
	"review_rating",
	"review_author",
	"review_status",
	"review_has_media",
	"review_content",
	"review_title",
	"review_link",
	"is_store_review",
}

// BaseColumns returns the fixed columns in their stable output order.
func BaseColumns() []string {
	cols := make([]string, len(baseColumns))
	copy(cols, baseColumns)
	return cols
}

// Flatten projects one raw event into a Row. Missing nesting at any level
// maps to an empty cell; it never fails.
func Flatten(ev client.RawEvent) Row {
	attrs := ev.Attributes
	props := properties(attrs)

	row := make(Row, len(baseColumns))
	for _, col := range baseColumns {
		row[col] = ""
	}

	row["event_id"] = ev.ID
	row["event_datetime"] = stringify(attrs["datetime"])
	row["profile_email"] = stringify(dig(attrs, "profile", "data", "attributes", "email"))

	for key, value := range props {
		if strings.HasPrefix(key, cqPrefix) {
			row[key] = stringify(value)
		}
	}

	for _, field := range reviewFields {
		row[field] = stringify(props[field])
	}

	if product, ok := props["product"].(map[string]interface{}); ok {
		row["product_id"] = stringify(product["id"])
		row["product_title"] = stringify(product["title"])
		row["product_handle"] = stringify(product["handle"])
		row["product_type"] = stringify(product["product_type"])
		row["product_vendor"] = stringify(product["vendor"])
		row["product_tags"] = stringify(product["tags"])

		if variant, ok := product["variant"].(map[string]interface{}); ok {
			row["variant_id"] = stringify(variant["id"])
			row["variant_title"] = stringify(variant["title"])
			row["variant_sku"] = stringify(variant["sku"])
		}
	}

	if structured, ok := props["structured_product"].(map[string]interface{}); ok {
		row["structured_product_name"] = stringify(structured["product_name"])
		row["structured_product_url"] = stringify(structured["url"])
		row["structured_product_image_url"] = stringify(structured["image_url"])
	}

	return row
}

// properties selects the event property map. Single-event responses carry
// the full set under event_properties; bulk responses use properties.
func properties(attrs map[string]interface{}) map[string]interface{} {
	if props, ok := attrs["event_properties"].(map[string]interface{}); ok && len(props) > 0 {
		return props
	}
	if props, ok := attrs["properties"].(map[string]interface{}); ok {
		return props
	}
	return nil
}

// dig walks nested maps by key, returning nil when any level is absent.
func dig(m map[string]interface{}, keys ...string) interface{} {
	var cur interface{} = m
	for _, key := range keys {
		node, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = node[key]
	}
	return cur
}

// stringify renders a JSON scalar as a CSV cell. Lists are joined with
// ", " to match the historical export format.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
