package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/mr-tron/base58"
)

// DigestLength is the decoded size of an object or transaction digest.
const DigestLength = 32

// ErrInvalidDigest is returned when a digest is not 32 base58-encoded bytes.
var ErrInvalidDigest = errors.New("invalid digest")

// ObjectRef identifies one version of an object. It is all a transaction
// needs to reference a coin.
type ObjectRef struct {
	ObjectID string `json:"objectId"`
	Version  uint64 `json:"version"`
	Digest   string `json:"digest"`
}

// Coin is a snapshot of a coin object as returned by suix_getCoins.
type Coin struct {
	CoinType            string `json:"coinType"`
	ObjectID            string `json:"coinObjectId"`
	Version             uint64 `json:"version"`
	Digest              string `json:"digest"`
	Balance             uint64 `json:"balance"`
	PreviousTransaction string `json:"previousTransaction,omitempty"`
}

// Ref returns the reference of the coin.
func (c Coin) Ref() ObjectRef {
	return ObjectRef{ObjectID: c.ObjectID, Version: c.Version, Digest: c.Digest}
}

// CoinPage is one page of coins.
type CoinPage struct {
	Data        []Coin
	NextCursor  string
	HasNextPage bool
}

// Balance is the aggregated balance of one coin type for an owner.
type Balance struct {
	CoinType        string
	CoinObjectCount int
	// TotalBalance is in the coin's smallest unit (MIST for SUI).
	TotalBalance *big.Int
}

// Object is the reshaped view of an on-chain object.
type Object struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	Version uint64            `json:"version"`
	Digest  string            `json:"digest"`
	Fields  map[string]any    `json:"fields,omitempty"`
	Display map[string]string `json:"display,omitempty"`
}

// DynamicFieldName addresses a dynamic field of a parent object.
type DynamicFieldName struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// String renders the name as "<type>: <value>", e.g. "u64: 9".
func (n DynamicFieldName) String() string {
	return fmt.Sprintf("%s: %v", n.Type, n.Value)
}

// DynamicFieldInfo describes a dynamic field without loading its value.
type DynamicFieldInfo struct {
	Name       DynamicFieldName `json:"name"`
	BCSName    string           `json:"bcsName,omitempty"`
	Kind       string           `json:"type"` // "DynamicField" | "DynamicObject"
	ObjectType string           `json:"objectType"`
	ObjectID   string           `json:"objectId"`
	Version    uint64           `json:"version"`
	Digest     string           `json:"digest"`
}

// DynamicFieldPage is one page of dynamic fields.
type DynamicFieldPage struct {
	Data        []DynamicFieldInfo
	NextCursor  string
	HasNextPage bool
}

// NormalizedModule is the normalized interface of a Move module. Struct and
// type shapes are kept as raw JSON since they are recursive variants.
type NormalizedModule struct {
	FileFormatVersion int                           `json:"fileFormatVersion"`
	Address           string                        `json:"address"`
	Name              string                        `json:"name"`
	Friends           []ModuleID                    `json:"friends"`
	Structs           map[string]json.RawMessage    `json:"structs"`
	ExposedFunctions  map[string]NormalizedFunction `json:"exposedFunctions"`
}

// ModuleID names a module within a package.
type ModuleID struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// NormalizedFunction is an exposed Move function signature.
type NormalizedFunction struct {
	Visibility     string            `json:"visibility"`
	IsEntry        bool              `json:"isEntry"`
	TypeParameters []json.RawMessage `json:"typeParameters"`
	Parameters     []json.RawMessage `json:"parameters"`
	Return         []json.RawMessage `json:"return"`
}

// ParseDigest decodes a base58 digest and checks its length.
func ParseDigest(s string) ([]byte, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidDigest, s, err)
	}
	if len(b) != DigestLength {
		return nil, fmt.Errorf("%w %q: %d bytes, want %d", ErrInvalidDigest, s, len(b), DigestLength)
	}
	return b, nil
}

// --- wire types ---

// jsonUint64 accepts both quoted and bare u64 values; the node encodes
// versions and balances as strings in some responses and numbers in others.
type jsonUint64 uint64

func (u *jsonUint64) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing u64 %s: %w", data, err)
	}
	*u = jsonUint64(n)
	return nil
}

type coinJSON struct {
	CoinType            string     `json:"coinType"`
	CoinObjectID        string     `json:"coinObjectId"`
	Version             jsonUint64 `json:"version"`
	Digest              string     `json:"digest"`
	Balance             jsonUint64 `json:"balance"`
	PreviousTransaction string     `json:"previousTransaction"`
}

type coinPageJSON struct {
	Data        []coinJSON `json:"data"`
	NextCursor  *string    `json:"nextCursor"`
	HasNextPage bool       `json:"hasNextPage"`
}

type balanceJSON struct {
	CoinType        string `json:"coinType"`
	CoinObjectCount int    `json:"coinObjectCount"`
	TotalBalance    string `json:"totalBalance"`
}

type objectResponseJSON struct {
	Data  *objectDataJSON  `json:"data"`
	Error *objectErrorJSON `json:"error"`
}

type objectDataJSON struct {
	ObjectID string     `json:"objectId"`
	Version  jsonUint64 `json:"version"`
	Digest   string     `json:"digest"`
	Type     string     `json:"type"`
	Content  *struct {
		DataType string         `json:"dataType"`
		Type     string         `json:"type"`
		Fields   map[string]any `json:"fields"`
	} `json:"content"`
	Display *struct {
		Data map[string]string `json:"data"`
	} `json:"display"`
}

type objectErrorJSON struct {
	Code     string `json:"code"`
	ObjectID string `json:"object_id"`
}

type dynamicFieldJSON struct {
	Name       DynamicFieldName `json:"name"`
	BCSName    string           `json:"bcsName"`
	Type       string           `json:"type"`
	ObjectType string           `json:"objectType"`
	ObjectID   string           `json:"objectId"`
	Version    jsonUint64       `json:"version"`
	Digest     string           `json:"digest"`
}

type dynamicFieldPageJSON struct {
	Data        []dynamicFieldJSON `json:"data"`
	NextCursor  *string            `json:"nextCursor"`
	HasNextPage bool               `json:"hasNextPage"`
}

func (c coinJSON) toCoin() (Coin, error) {
	if _, err := ParseDigest(c.Digest); err != nil {
		return Coin{}, fmt.Errorf("coin %s: %w", c.CoinObjectID, err)
	}
	return Coin{
		CoinType:            c.CoinType,
		ObjectID:            c.CoinObjectID,
		Version:             uint64(c.Version),
		Digest:              c.Digest,
		Balance:             uint64(c.Balance),
		PreviousTransaction: c.PreviousTransaction,
	}, nil
}

func (r objectResponseJSON) toObject(id string) (*Object, error) {
	if r.Error != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrObjectNotFound, id, r.Error.Code)
	}
	if r.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	d := r.Data
	obj := &Object{
		ID:      d.ObjectID,
		Type:    d.Type,
		Version: uint64(d.Version),
		Digest:  d.Digest,
	}
	if d.Content != nil {
		obj.Fields = d.Content.Fields
		if obj.Type == "" {
			obj.Type = d.Content.Type
		}
	}
	if d.Display != nil {
		obj.Display = d.Display.Data
	}
	return obj, nil
}

func (p dynamicFieldPageJSON) toPage() *DynamicFieldPage {
	page := &DynamicFieldPage{
		Data:        make([]DynamicFieldInfo, 0, len(p.Data)),
		HasNextPage: p.HasNextPage,
	}
	if p.NextCursor != nil {
		page.NextCursor = *p.NextCursor
	}
	for _, f := range p.Data {
		page.Data = append(page.Data, DynamicFieldInfo{
			Name:       f.Name,
			BCSName:    f.BCSName,
			Kind:       f.Type,
			ObjectType: f.ObjectType,
			ObjectID:   f.ObjectID,
			Version:    uint64(f.Version),
			Digest:     f.Digest,
		})
	}
	return page
}
