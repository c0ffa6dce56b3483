package asset

import "time"

// Asset is one stock-tracked consumable or attachment for the heavy
// equipment fleet, e.g. a bucket type in a given size variant.
type Asset struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Category    string    `json:"category"`
	SizeVariant string    `json:"sizeVariant"`
	StockCount  int       `json:"stockCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Movement is one inbound/outbound stock mutation in a reporting month.
type Movement struct {
	ID       string    `json:"id"`
	AssetID  string    `json:"assetId"`
	Period   time.Time `json:"period"`
	Inbound  int       `json:"inbound"`
	Outbound int       `json:"outbound"`
	Note     string    `json:"note,omitempty"`
}

// MonthlyRow is the stock report line for one asset in one month. Closing
// equals the current stock count; opening is derived back through the
// month's mutations.
type MonthlyRow struct {
	Asset
	Inbound  int `json:"inbound"`
	Outbound int `json:"outbound"`
	Opening  int `json:"opening"`
	Closing  int `json:"closing"`
}

func (m MonthlyRow) withDerived() MonthlyRow {
	m.Closing = m.StockCount
	m.Opening = m.Closing - m.Inbound + m.Outbound
	return m
}
