package dto

// ClosureListRequest - запрос списка закрытий
type ClosureListRequest struct {
	Kind string `query:"kind" validate:"omitempty,oneof=trail traffic"`
}

// ParkListRequest - запрос списка парков; точка пользователя необязательна
type ParkListRequest struct {
	Lat string `query:"lat" validate:"omitempty,latitude"`
	Lon string `query:"lon" validate:"omitempty,longitude"`
}

// ResolveRequest - координаты в том виде, в каком они пришли из датасета
type ResolveRequest struct {
	Lat string `query:"lat" validate:"required,latitude"`
	Lon string `query:"lon" validate:"required,longitude"`
}

type SelectDatasetRequest struct {
	Kind string `json:"kind" form:"kind" validate:"required,oneof=trail traffic"`
}

type SelectViewRequest struct {
	View string `json:"view" form:"view" validate:"required,oneof=list map"`
}

// ToggleCardRequest - раскрытие или сворачивание карточки по ключу
type ToggleCardRequest struct {
	Key string `json:"key" form:"key" validate:"required"`
}
