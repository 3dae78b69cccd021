package wizard

import "sync"

type inFlightKey struct {
	userID     int64
	resourceID int64
}

// InFlight отмечает запросы пользователя к ресурсу, которые ещё выполняются.
// Повторное сообщение по тому же ресурсу отбрасывается, пока первое не завершится.
type InFlight struct {
	keys sync.Map
}

// NewInFlight создаёт пустой набор отметок
func NewInFlight() *InFlight {
	return &InFlight{}
}

// TryAcquire атомарно ставит отметку, false если она уже стоит
func (f *InFlight) TryAcquire(userID, resourceID int64) bool {
	_, loaded := f.keys.LoadOrStore(inFlightKey{userID, resourceID}, struct{}{})
	return !loaded
}

// Release снимает отметку
func (f *InFlight) Release(userID, resourceID int64) {
	f.keys.Delete(inFlightKey{userID, resourceID})
}
