package segments

// getBufFromPool mengambil buffer dari pool atau membuat baru jika tidak tersedia.
// Ukuran buffer selalu l.diskRec byte (CRC + flags + dua nilai bound).
func (l *HistoryLog[T]) getBufFromPool() []byte {
	if l.bufPool != nil {
		return l.bufPool.Get().([]byte)
	}
	return make([]byte, l.diskRec)
}

// returnBufToPool mengembalikan buffer ke pool untuk digunakan kembali.
// Hanya buffer dengan ukuran tepat yang akan dimasukkan kembali ke pool.
func (l *HistoryLog[T]) returnBufToPool(buf []byte) {
	if l.bufPool != nil && len(buf) == l.diskRec {
		l.bufPool.Put(buf)
	}
}
