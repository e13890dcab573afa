package force

// tileForceKernelSource is the OpenCL C source of the tile force kernel.
// One work item per tile; the loop body mirrors pairForce.
const tileForceKernelSource = `
__kernel void calculate_force(
    __global const float2* tiles,
    __global const float* masses,
    const int count,
    const float gravity,
    const float epsilon,
    __global float2* out_forces)
{
    int i = get_global_id(0);
    if (i >= count) {
        return;
    }
    float2 p = tiles[i];
    float mi = masses[i];
    float2 f = (float2)(0.0f, 0.0f);
    for (int j = 0; j < count; j++) {
        float dx = tiles[j].x - p.x;
        float dy = tiles[j].y - p.y;
        float dist = sqrt(dx * dx + dy * dy);
        if (dist < epsilon) {
            continue;
        }
        float magnitude = gravity * mi * masses[j] / dist * dist;
        f.x += magnitude * (dx / dist);
        f.y += magnitude * (dy / dist);
    }
    out_forces[i] = f;
}
`
