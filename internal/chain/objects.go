package chain

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// maxObjectsPerCall is the node's limit for sui_multiGetObjects.
const maxObjectsPerCall = 50

// objectOptions asks the node for everything Object carries.
var objectOptions = map[string]bool{
	"showType":    true,
	"showContent": true,
	"showDisplay": true,
}

// GetObject fetches one object by id.
func (c *SUIClient) GetObject(ctx context.Context, id string) (*Object, error) {
	var resp objectResponseJSON
	if err := c.call(ctx, &resp, "sui_getObject", id, objectOptions); err != nil {
		return nil, err
	}
	return resp.toObject(id)
}

// MultiGetObjects fetches many objects. Ids are split into chunks of at most
// 50 that are requested concurrently; the result order matches ids.
func (c *SUIClient) MultiGetObjects(ctx context.Context, ids []string) ([]*Object, error) {
	out := make([]*Object, len(ids))
	g, gctx := errgroup.WithContext(ctx)

	for start := 0; start < len(ids); start += maxObjectsPerCall {
		end := min(start+maxObjectsPerCall, len(ids))
		chunk := ids[start:end]
		offset := start

		g.Go(func() error {
			var resp []objectResponseJSON
			if err := c.call(gctx, &resp, "sui_multiGetObjects", chunk, objectOptions); err != nil {
				return err
			}
			if len(resp) != len(chunk) {
				return fmt.Errorf("sui_multiGetObjects: got %d objects for %d ids", len(resp), len(chunk))
			}
			for i, r := range resp {
				obj, err := r.toObject(chunk[i])
				if err != nil {
					return err
				}
				out[offset+i] = obj
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetNormalizedMoveModule returns the normalized interface of pkg::module.
func (c *SUIClient) GetNormalizedMoveModule(ctx context.Context, pkg, module string) (*NormalizedModule, error) {
	var mod NormalizedModule
	if err := c.call(ctx, &mod, "sui_getNormalizedMoveModule", pkg, module); err != nil {
		return nil, err
	}
	return &mod, nil
}

// GetNormalizedMoveModulesByPackage returns every module of a package keyed
// by module name.
func (c *SUIClient) GetNormalizedMoveModulesByPackage(ctx context.Context, pkg string) (map[string]*NormalizedModule, error) {
	var mods map[string]*NormalizedModule
	if err := c.call(ctx, &mods, "sui_getNormalizedMoveModulesByPackage", pkg); err != nil {
		return nil, err
	}
	return mods, nil
}
