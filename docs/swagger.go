// Package docs Commute Report Service API.
//
// Сервис отчётов о поездке: по почтовому индексу отправления и адресу назначения
// строит отчёт с временем в пути на общественном транспорте, ближайшими
// станциями и начальными школами с пешеходным расстоянием.
//
// Основные возможности:
// - Геокодирование почтового индекса (Google Geocoding)
// - Маршрут на общественном транспорте (Google Directions)
// - Поиск станций и школ рядом с точкой (Google Places Nearby Search)
// - Пешеходное расстояние до каждого места (Google Directions или Mapbox Matrix)
// - Архив отчётов в PostgreSQL и асинхронная обработка через Redis Streams
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
