package chain

import (
	"context"
	"fmt"
)

// GetDynamicFields lists one page of the dynamic fields of parent. An empty
// cursor starts from the beginning; limit <= 0 uses the node default.
func (c *SUIClient) GetDynamicFields(ctx context.Context, parent, cursor string, limit int) (*DynamicFieldPage, error) {
	var resp dynamicFieldPageJSON
	if err := c.call(ctx, &resp, "suix_getDynamicFields", parent, optionalCursor(cursor), optionalLimit(limit)); err != nil {
		return nil, err
	}
	return resp.toPage(), nil
}

// GetDynamicFieldObject fetches the object stored under name in parent.
func (c *SUIClient) GetDynamicFieldObject(ctx context.Context, parent string, name DynamicFieldName) (*Object, error) {
	var resp objectResponseJSON
	if err := c.call(ctx, &resp, "suix_getDynamicFieldObject", parent, name); err != nil {
		return nil, err
	}
	return resp.toObject(fmt.Sprintf("dynamic field %s of %s", name, parent))
}
