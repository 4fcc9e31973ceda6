package baseline

import "runtime"

// WorkerPool 채널 기반 세마포. 슬롯을 못 얻으면 호출자가 순차 처리한다.
type WorkerPool struct {
	slots chan struct{}
}

// NewWorkerPool size개 슬롯의 풀. size <= 0 이면 CPU 코어 수.
func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &WorkerPool{slots: make(chan struct{}, size)}
}

// TryAcquire 슬롯 획득 시도 (블로킹 없음)
func (p *WorkerPool) TryAcquire() bool {
	select {
	case p.slots <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release 슬롯 반환
func (p *WorkerPool) Release() {
	<-p.slots
}

// Status 사용 중인 슬롯과 전체 용량
func (p *WorkerPool) Status() (used, capacity int) {
	return len(p.slots), cap(p.slots)
}

// Reset 남은 슬롯을 모두 비운다 (패닉 복구 후 사용)
func (p *WorkerPool) Reset() {
	for len(p.slots) > 0 {
		<-p.slots
	}
}
