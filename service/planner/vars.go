package planner

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/elC0mpa/oci-freetier/model"
)

var (
	intAssignRe  = regexp.MustCompile(`^\s*(\w+)\s*=\s*(\d+)\s*$`)
	listAssignRe = regexp.MustCompile(`^\s*(\w+)\s*=\s*\[(.*)\]\s*$`)
)

// parseVariablesFile extracts a plan from a previously generated
// variables.tf by scanning the locals assignments. It only understands
// files written by this tool; the structured side-car takes precedence
// whenever it exists.
func parseVariablesFile(path string) (*model.InstancePlan, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no saved configuration: %w", err)
	}
	defer file.Close()

	ints := map[string]int{}
	stringLists := map[string][]string{}
	intLists := map[string][]int{}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if m := intAssignRe.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[2])
			ints[m[1]] = n
			continue
		}
		m := listAssignRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, item := range strings.Split(m[2], ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if unquoted := strings.Trim(item, `"`); unquoted != item {
				stringLists[m[1]] = append(stringLists[m[1]], unquoted)
			} else if n, err := strconv.Atoi(item); err == nil {
				intLists[m[1]] = append(intLists[m[1]], n)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if _, amdOK := ints["amd_micro_instance_count"]; !amdOK {
		if _, armOK := ints["arm_flex_instance_count"]; !armOK {
			return nil, fmt.Errorf("no recognizable configuration in %s", path)
		}
	}

	plan := &model.InstancePlan{
		AMDCount:         ints["amd_micro_instance_count"],
		AMDBootVolumeGB:  ints["amd_micro_boot_volume_size_gb"],
		AMDHostnames:     stringLists["amd_micro_hostnames"],
		ARMCount:         ints["arm_flex_instance_count"],
		ARMOCPUs:         intLists["arm_flex_ocpus_per_instance"],
		ARMMemoryGB:      intLists["arm_flex_memory_per_instance"],
		ARMBootVolumeGB:  intLists["arm_flex_boot_volume_sizes"],
		ARMBlockVolumeGB: intLists["arm_block_volume_sizes"],
		ARMHostnames:     stringLists["arm_flex_hostnames"],
	}
	if plan.AMDBootVolumeGB == 0 {
		plan.AMDBootVolumeGB = defaultAMDBootGB
	}
	if plan.ARMBlockVolumeGB == nil && plan.ARMCount > 0 {
		plan.ARMBlockVolumeGB = make([]int, plan.ARMCount)
	}
	return plan, nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
