// Package docs Snapshot Microservice API.
//
// Сервис статических растровых снапшотов карт. Рендерит одно
// изображение региона карты по настроенному источнику тайлов,
// опционально с оверлейным слоем из внешних геоданных (GeoJSON),
// спозиционированным автоматически по содержимому данных.
//
// Основные возможности:
// - Прямой рендер кадра по координатам и зуму
// - Оверлейный рендер: базовая карта + векторный слой, композитинг в PNG
// - Авто-позиционирование кадра по bounds геоданных (zoom=auto)
// - Статистика рендеров по источникам
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Produces:
//	- image/png
//	- image/jpeg
//	- application/json
//
// swagger:meta
package docs
