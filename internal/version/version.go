// version реализует реестры версий токенов: монотонный счётчик на учётную
// запись, встраиваемый в выпускаемые токены как nonce. Инкремент счётчика
// мгновенно инвалидирует все ранее выпущенные токены данного вида для
// учётной записи без ведения списков отзыва.
//
// Реестр реализован один раз и инстанцируется дважды — для access- и
// refresh-токенов (Kind). Реализации:
//   - Memory — мьютекс поверх map, состояние живёт в памяти процесса;
//   - Redis — атомарный INCR, переживает рестарты и разделяется между
//     инстансами сервиса.
package version

import "context"

// Kind — вид токена, которым параметризуется реестр.
type Kind string

const (
	// Access — реестр версий access-токенов.
	Access Kind = "access"
	// Refresh — реестр версий refresh-токенов.
	Refresh Kind = "refresh"
)

// Registry — контракт реестра версий.
//
// Гарантии:
//   - счётчик на ключ строго неубывающий;
//   - конкурентные Increment по одному ключу сериализуются, инкременты
//     не теряются;
//   - порядок между разными ключами не определён.
type Registry interface {
	// Get возвращает текущее значение счётчика; 0 для незнакомого ключа.
	Get(ctx context.Context, accountID int64) (int64, error)
	// Increment атомарно увеличивает счётчик на 1 (создавая запись при
	// отсутствии) и возвращает новое значение. Ошибок бизнес-уровня нет.
	Increment(ctx context.Context, accountID int64) (int64, error)
}
