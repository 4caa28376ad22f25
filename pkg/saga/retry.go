package saga

// ResolveRetryCount вычисляет номер следующей попытки для сообщения.
// Для сообщения без RetryData возвращает 1, иначе — счётчик + 1.
// Чистая функция без побочных эффектов, одна и та же для всех шагов.
func ResolveRetryCount(msg *Message) int {
	if msg.RetryData == nil {
		return 1
	}
	return msg.RetryData.Count + 1
}

// RetryExhausted возвращает true, если вычисленный номер попытки достиг
// настроенного максимума. В этом случае обработчик не переотправляет
// сообщение, а публикует компенсирующее (или фиксирует терминальный отказ).
func RetryExhausted(msg *Message, maxRetries int) bool {
	return ResolveRetryCount(msg) >= maxRetries
}
