// Copyright 2025 SGNL.ai, Inc.
package fields

import "go.uber.org/zap"

const (
	FieldMethod     = "method"
	FieldURL        = "url"
	FieldStatusCode = "statusCode"
	FieldEndpoint   = "endpoint"
	FieldRequestID  = "requestId"
	FieldAdapter    = "adapter"
	FieldPlugin     = "plugin"
)

func Method(method string) zap.Field {
	return zap.String(FieldMethod, method)
}

func URL(url string) zap.Field {
	return zap.String(FieldURL, url)
}

func StatusCode(statusCode int) zap.Field {
	return zap.Int(FieldStatusCode, statusCode)
}

func Endpoint(endpoint string) zap.Field {
	return zap.String(FieldEndpoint, endpoint)
}

func RequestID(id string) zap.Field {
	return zap.String(FieldRequestID, id)
}

func Adapter(name string) zap.Field {
	return zap.String(FieldAdapter, name)
}

func Plugin(name string) zap.Field {
	return zap.String(FieldPlugin, name)
}
