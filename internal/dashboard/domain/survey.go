package domain

// Survey は調査カタログの1エントリ。Active な調査のみが集計対象になる。
type Survey struct {
	AssetID   string
	Name      string
	CountryID string
	Active    bool
}
