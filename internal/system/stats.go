package system

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// perWorkerBytes is a rough budget for one item in flight: a handful of
// decoded 1080x1920 RGBA images plus their pre-scaled copies.
const perWorkerBytes = 256 << 20

// RecommendedWorkers подбирает размер пула по числу логических ядер и
// свободной памяти. Возвращает не меньше 1.
func RecommendedWorkers() int {
	cores, err := cpu.Counts(true)
	if err != nil || cores <= 0 {
		cores = runtime.NumCPU()
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return max(cores, 1)
	}
	return workersFor(cores, vm.Available)
}

func workersFor(cores int, available uint64) int {
	byMem := int(available / perWorkerBytes)
	n := min(cores, byMem)
	if n < 1 {
		n = 1
	}
	return n
}

// MemoryReport is a one-line summary of system memory for the stats report.
func MemoryReport() string {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Sprintf("недоступно (%v)", err)
	}
	return formatMemory(vm.Used, vm.Total, vm.UsedPercent)
}

func formatMemory(used, total uint64, percent float64) string {
	return fmt.Sprintf("%.1f/%.1f GiB (%.0f%%)", float64(used)/(1<<30), float64(total)/(1<<30), percent)
}
