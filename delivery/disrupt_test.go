package delivery

import "travelmate/domain/chat"

// Disrupt reports CHANNEL_ERROR to every feed of the room, as a network blip
// would. An empty room disrupts every feed.
func (h *Hub) Disrupt(roomID chat.RoomID, cause error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.feeds {
		if roomID == "" || s.filter.RoomID == roomID {
			s.report(chat.StatusChannelError, cause)
		}
	}
}
