// redact скрывает чувствительные значения перед записью в логи.
package redact

// Name маскирует логин администратора, оставляя первые два символа.
func Name(s string) string {
	r := []rune(s)
	if len(r) <= 2 {
		return "***"
	}

	return string(r[:2]) + "***"
}

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }
