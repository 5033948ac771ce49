package mocks

//go:generate mockgen -destination=./content_source_mock.go -package=mocks cinelist-backend/services RelatedSource,ContentSource
